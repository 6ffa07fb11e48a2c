package memory

import "testing"

func TestBoardStoreLifecycle(t *testing.T) {
	store := NewBoardStore()

	if _, ok := store.Get(); ok {
		t.Fatalf("expected no board before creation")
	}
	board := store.GetOrCreate(sampleQuestions())
	if board == nil {
		t.Fatalf("expected board")
	}
	if again := store.GetOrCreate(nil); again != board {
		t.Fatalf("expected the existing board to be reused")
	}
	if got, ok := store.Get(); !ok || got != board {
		t.Fatalf("expected board present")
	}

	store.Release()
	if _, ok := store.Get(); ok {
		t.Fatalf("expected board removed after release")
	}
}
