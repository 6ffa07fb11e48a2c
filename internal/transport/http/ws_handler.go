package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"feud-board-service/internal/app"
)

// WSHandler streams board snapshots to a display and accepts host actions on the same socket.
type WSHandler struct {
	service  *app.HostService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.HostService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type guessPayload struct {
	Text string `json:"text"`
}

type revealPayload struct {
	Rank int `json:"rank"`
}

type revealResult struct {
	Rank     int  `json:"rank"`
	Revealed bool `json:"revealed"`
}

type navResult struct {
	Moved bool `json:"moved"`
	Index int  `json:"index"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the board use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	updates, cancel, err := h.service.Subscribe(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.NewString()
	log.Printf("display %s connected", clientID)
	defer log.Printf("display %s disconnected", clientID)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer; gorilla connections do not support concurrent writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "board", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		send <- h.handle(r, inbound)
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// handle applies one inbound action. Snapshots reach the client through the subscription.
func (h *WSHandler) handle(r *http.Request, inbound inboundMessage) outboundMessage[any] {
	ctx := r.Context()
	switch inbound.Type {
	case "guess":
		var payload guessPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid guess payload")
		}
		result, _, err := h.service.SubmitGuess(ctx, payload.Text)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "guessResult", Payload: result}
	case "reveal":
		var payload revealPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid reveal payload")
		}
		revealed, _, err := h.service.Reveal(ctx, payload.Rank)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "revealResult", Payload: revealResult{Rank: payload.Rank, Revealed: revealed}}
	case "next", "prev":
		step := h.service.Next
		if inbound.Type == "prev" {
			step = h.service.Prev
		}
		moved, snapshot, err := step(ctx)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "navResult", Payload: navResult{Moved: moved, Index: snapshot.Index}}
	case "popup":
		active, err := h.service.PopupActive(ctx)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "popup", Payload: popupResponse{Active: active}}
	default:
		return errorMessage("unsupported message type")
	}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
