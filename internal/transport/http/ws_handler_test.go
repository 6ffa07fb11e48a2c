package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"feud-board-service/internal/domain"
)

func TestWebSocketGuessFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := newTestService(t, sampleQuestions())
	server := httptest.NewServer(NewRouter(service, RouterOptions{RateLimitRPS: 100, RateLimitBurst: 100}))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect the current board first.
	_, payload := readNext(conn, t, "board")
	var initial domain.BoardSnapshot
	decode(t, payload, &initial)
	if initial.Count != 2 || initial.Prompt != "Name a capital city" {
		t.Fatalf("unexpected initial board: %+v", initial)
	}

	send(t, conn, "guess", map[string]any{"text": "rome"})
	resultSeen, boardSeen := false, false
	for i := 0; i < 4 && !(resultSeen && boardSeen); i++ {
		typ, payload := readNext(conn, t, "")
		switch typ {
		case "guessResult":
			var result domain.GuessResult
			decode(t, payload, &result)
			if result.Outcome != domain.GuessCorrect || result.Rank != 3 {
				t.Fatalf("expected rank 3 correct, got %+v", result)
			}
			resultSeen = true
		case "board":
			var board domain.BoardSnapshot
			decode(t, payload, &board)
			if !board.Slots[2].Revealed {
				t.Fatalf("expected pushed board with rank 3 open, got %+v", board.Slots[2])
			}
			boardSeen = true
		}
	}
	if !resultSeen || !boardSeen {
		t.Fatalf("expected guessResult and board, got guessResult=%v board=%v", resultSeen, boardSeen)
	}

	send(t, conn, "guess", map[string]any{"text": "Tokyo"})
	expectType(t, conn, "guessResult")
	send(t, conn, "popup", nil)
	_, payload = expectType(t, conn, "popup")
	var popup popupResponse
	decode(t, payload, &popup)
	if !popup.Active {
		t.Fatalf("expected popup active after wrong guess")
	}

	send(t, conn, "next", nil)
	_, payload = expectType(t, conn, "navResult")
	var nav navResult
	decode(t, payload, &nav)
	if !nav.Moved || nav.Index != 1 {
		t.Fatalf("expected move to question 2, got %+v", nav)
	}

	send(t, conn, "shuffle", nil)
	expectType(t, conn, "error")
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// expectType skips pushed board snapshots until a message of the wanted type arrives.
func expectType(t *testing.T, conn *websocket.Conn, want string) (string, json.RawMessage) {
	t.Helper()
	for i := 0; i < 5; i++ {
		typ, payload := readNext(conn, t, "")
		if typ == want {
			return typ, payload
		}
		if typ != "board" {
			t.Fatalf("expected %s, got %s", want, typ)
		}
	}
	t.Fatalf("no %s message received", want)
	return "", nil
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, json.RawMessage) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

func decode(t *testing.T, raw json.RawMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
}
