package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type sentMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func newTestServer(t *testing.T, respond func(w http.ResponseWriter)) (*httptest.Server, *[]sentMessage) {
	t.Helper()
	var mu sync.Mutex
	var got []sentMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var msg sentMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()

		respond(w)
	}))

	originalURL := apiBaseURL
	apiBaseURL = server.URL + "/bot"
	t.Cleanup(func() {
		apiBaseURL = originalURL
		server.Close()
	})

	return server, &got
}

func okResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true,"result":{"message_id":123}}`))
}

func TestSendMessage_Success(t *testing.T) {
	_, got := newTestServer(t, okResponse)

	client, err := NewClient("test-token", "12345")
	if err != nil {
		t.Fatal(err)
	}

	if err := client.SendMessage(context.Background(), "本周赛事预告~"); err != nil {
		t.Fatalf("SendMessage() unexpected error: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("sent %d messages, want 1", len(*got))
	}
	msg := (*got)[0]
	if msg.ChatID != "12345" || msg.Text != "本周赛事预告~" {
		t.Errorf("sent %+v", msg)
	}
	if msg.ParseMode != "" {
		t.Errorf("parse_mode = %q, want plain text", msg.ParseMode)
	}
}

func TestSendMessage_ParseMode(t *testing.T) {
	_, got := newTestServer(t, okResponse)

	client, _ := NewClient("test-token", "12345")
	client.SetParseMode("HTML")

	if err := client.SendMessage(context.Background(), "<b>hi</b>"); err != nil {
		t.Fatal(err)
	}
	if (*got)[0].ParseMode != "HTML" {
		t.Errorf("parse_mode = %q, want HTML", (*got)[0].ParseMode)
	}
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		wantErr string
	}{
		{
			name: "api error",
			respond: func(w http.ResponseWriter) {
				w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
			},
			wantErr: "chat not found",
		},
		{
			name: "http status",
			respond: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"ok":false}`))
			},
			wantErr: "status 401",
		},
		{
			name: "invalid json",
			respond: func(w http.ResponseWriter) {
				w.Write([]byte(`not json`))
			},
			wantErr: "parsing response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newTestServer(t, tt.respond)
			client, _ := NewClient("test-token", "12345")

			err := client.SendMessage(context.Background(), "hello")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("SendMessage() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSendMessage_EmptyText(t *testing.T) {
	client, _ := NewClient("test-token", "12345")
	if err := client.SendMessage(context.Background(), ""); err == nil {
		t.Error("SendMessage(\"\") should fail")
	}
}

func TestSendMessage_LongTextIsSplit(t *testing.T) {
	_, got := newTestServer(t, okResponse)
	client, _ := NewClient("test-token", "12345")

	line := strings.Repeat("x", 99) + "\n"
	text := strings.Repeat(line, 50) // 5000 chars

	if err := client.SendMessage(context.Background(), text); err != nil {
		t.Fatal(err)
	}
	if len(*got) != 2 {
		t.Fatalf("sent %d messages, want 2", len(*got))
	}
	if (*got)[0].Text+(*got)[1].Text != text {
		t.Error("split parts do not reassemble to the original text")
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		chatID  string
		wantErr bool
	}{
		{"valid", "token", "123", false},
		{"missing token", "", "123", true},
		{"missing chat", "token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.token, tt.chatID)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"fits", "a\nb\n", 10, []string{"a\nb\n"}},
		{"line boundary", "aaa\nbbb\nccc", 8, []string{"aaa\nbbb\n", "ccc"}},
		{"overlong line", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"runes", "赛事赛事\n赛事", 5, []string{"赛事赛事\n", "赛事"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.limit)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}
