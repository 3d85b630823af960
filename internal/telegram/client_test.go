package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("", "")
	if c.Configured() {
		t.Error("Configured() = true without token")
	}
	if err := c.SendMessage(context.Background(), "1", "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("SendMessage() error = %v, want ErrNotConfigured", err)
	}
}

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	c := NewClient("123:abc", srv.URL)
	if err := c.SendMessage(context.Background(), "-100", "health check failed"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["chat_id"] != "-100" || gotBody["text"] != "health check failed" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestClient_CreateChatInviteLink(t *testing.T) {
	expire := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true,"result":{"invite_link":"https://t.me/+abc"}}`))
	}))
	defer srv.Close()

	link, err := NewClient("t", srv.URL).CreateChatInviteLink(context.Background(), "-100", 1, expire)
	if err != nil {
		t.Fatalf("CreateChatInviteLink() error = %v", err)
	}
	if link != "https://t.me/+abc" {
		t.Errorf("link = %q", link)
	}
	if gotBody["member_limit"] != float64(1) || gotBody["expire_date"] != float64(expire.Unix()) {
		t.Errorf("body = %v", gotBody)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := NewClient("secret-token", srv.URL).SendMessage(context.Background(), "nope", "x")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("SendMessage() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 400 || !strings.Contains(apiErr.Description, "chat not found") {
		t.Errorf("APIError = %+v", apiErr)
	}
	if strings.Contains(err.Error(), "secret-token") {
		t.Errorf("error leaks token: %v", err)
	}
}

func TestClient_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient("secret-token", url).SendMessage(context.Background(), "1", "x")
	if err == nil {
		t.Fatal("SendMessage() expected error against closed server")
	}
	if strings.Contains(err.Error(), "secret-token") {
		t.Errorf("error leaks token: %v", err)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Errorf("error = %v, want the dial error as cause", err)
	}
}

func TestClient_TimeoutKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := NewClient("secret-token", srv.URL).SendMessage(ctx, "1", "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("SendMessage() error = %v, want context.DeadlineExceeded", err)
	}
	if strings.Contains(err.Error(), "secret-token") {
		t.Errorf("error leaks token: %v", err)
	}
}
