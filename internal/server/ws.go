package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type           string         `json:"type"`
	Message        string         `json:"message,omitempty"`
	PatientContext map[string]any `json:"patient_context,omitempty"`
}

type chatWSOutbound struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleChatWS streams chat tokens over a websocket. One generation
// runs at a time per connection; tokens are dropped rather than
// blocking the writer when the client cannot keep up.
func (h *Handler) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("[server] chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushChatWS(writeCh, chatWSOutbound{Type: "pong"})
		case "chat":
			if strings.TrimSpace(in.Message) == "" {
				pushChatWS(writeCh, chatWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: "message is required",
				})
				continue
			}
			q := chatRequest{Message: in.Message, PatientContext: in.PatientContext}.query()
			err := h.deps.Clinical.ProcessStream(ctx, q, func(token string) {
				pushChatWS(writeCh, chatWSOutbound{Type: "token", Content: token})
			})
			if err != nil {
				pushChatWS(writeCh, chatWSOutbound{
					Type:    "error",
					Code:    "internal",
					Message: err.Error(),
				})
				continue
			}
			pushChatWS(writeCh, chatWSOutbound{Type: "done"})
		default:
			pushChatWS(writeCh, chatWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + in.Type,
			})
		}
	}
}

func pushChatWS(writeCh chan chatWSOutbound, out chatWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
