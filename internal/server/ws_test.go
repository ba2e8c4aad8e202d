package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paramedai/internal/llm"

	"github.com/gorilla/websocket"
)

func dialChatWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readOutbound(t *testing.T, conn *websocket.Conn) chatWSOutbound {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var out chatWSOutbound
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestChatWSStreamsTokens(t *testing.T) {
	engine := llm.NewFakeEngine("scene is safe")
	engine.TokenSize = 5
	srv := httptest.NewServer(NewMux(newTestHandler(t, engine)))
	defer srv.Close()

	conn := dialChatWS(t, srv)
	if err := conn.WriteJSON(chatWSInbound{Type: "chat", Message: "report status"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var tokens []string
	for {
		out := readOutbound(t, conn)
		switch out.Type {
		case "token":
			tokens = append(tokens, out.Content)
			continue
		case "done":
		default:
			t.Fatalf("unexpected message %+v", out)
		}
		break
	}
	if got := strings.Join(tokens, ""); got != "scene is safe" {
		t.Errorf("joined tokens = %q", got)
	}
}

func TestChatWSPingPong(t *testing.T) {
	srv := httptest.NewServer(NewMux(newTestHandler(t, llm.NewFakeEngine("ok"))))
	defer srv.Close()

	conn := dialChatWS(t, srv)
	if err := conn.WriteJSON(chatWSInbound{Type: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out := readOutbound(t, conn); out.Type != "pong" {
		t.Fatalf("got %+v, want pong", out)
	}
}

func TestChatWSRejectsEmptyMessage(t *testing.T) {
	srv := httptest.NewServer(NewMux(newTestHandler(t, llm.NewFakeEngine("ok"))))
	defer srv.Close()

	conn := dialChatWS(t, srv)
	if err := conn.WriteJSON(chatWSInbound{Type: "chat"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := readOutbound(t, conn)
	if out.Type != "error" || out.Code != "invalid_argument" {
		t.Fatalf("got %+v, want invalid_argument error", out)
	}
}
