package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestBoardStoreSetsAndClearsMarker(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewBoardStore(newClient(mr), time.Minute)

	board := store.GetOrCreate(sampleQuestions())
	if !mr.Exists("board:session") {
		t.Fatalf("expected redis marker to be set")
	}
	if got, _ := mr.Get("board:session"); got != "1" {
		t.Fatalf("expected marker to carry question count, got %q", got)
	}
	if again := store.GetOrCreate(nil); again != board {
		t.Fatalf("expected existing board reused")
	}

	store.Release()
	if mr.Exists("board:session") {
		t.Fatalf("expected redis marker to be removed")
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("expected board dropped")
	}
}
