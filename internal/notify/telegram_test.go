package notify

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestTelegram_NotifySendsChatIDAndText(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tg := NewTelegram("token123", "chat456", discardLogger(), WithAPIBase(server.URL))

	ok := tg.Notify(context.Background(), "hello")
	if !ok {
		t.Fatal("Notify returned false")
	}

	if gotPath != "/bottoken123/sendMessage" {
		t.Errorf("path = %s", gotPath)
	}
	if gotPayload["chat_id"] != "chat456" {
		t.Errorf("chat_id = %s", gotPayload["chat_id"])
	}
	if gotPayload["text"] != "hello" {
		t.Errorf("text = %s", gotPayload["text"])
	}
}

func TestTelegram_NotifyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer server.Close()

	tg := NewTelegram("token", "chat", discardLogger(), WithAPIBase(server.URL))

	if tg.Notify(context.Background(), "hello") {
		t.Error("Notify should return false on API error")
	}
}

func TestTelegram_NotifyTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	tg := NewTelegram("token", "chat", discardLogger(), WithAPIBase(server.URL))

	if tg.Notify(context.Background(), "hello") {
		t.Error("Notify should return false on transport error")
	}
}

func TestNop_NotifyAlwaysSucceeds(t *testing.T) {
	if !(Nop{}).Notify(context.Background(), "anything") {
		t.Error("Nop must report success")
	}
}
