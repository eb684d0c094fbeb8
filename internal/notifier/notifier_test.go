package notifier

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wneessen/go-mail"
)

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewDryRunNotifier(&buf)

	if err := n.Notify(context.Background(), sampleSchedule(1)); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"--- Digest ---", "Codeforces Round 1000 (Div. 2)", "1 contests"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

type fakeSender struct {
	texts []string
	err   error
}

func (f *fakeSender) SendMessage(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func TestTelegramNotifier(t *testing.T) {
	fake := &fakeSender{}
	n := NewTelegramNotifier(fake)

	if err := n.Notify(context.Background(), sampleSchedule(3)); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(fake.texts) != 1 || !strings.Contains(fake.texts[0], "Atcoder:\n暂无比赛") {
		t.Errorf("sent %q", fake.texts)
	}

	fake.err = errors.New("chat not found")
	if err := n.Notify(context.Background(), sampleSchedule(1)); err == nil {
		t.Error("Notify() should surface send errors")
	}
}

type fakeMailer struct {
	sent []*mail.Msg
}

func (f *fakeMailer) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return nil
}

func TestEmailNotifier(t *testing.T) {
	fake := &fakeMailer{}
	n := &EmailNotifier{client: fake, from: "digest@example.com", to: []string{"a@example.com", "b@example.com"}}

	if err := n.Notify(context.Background(), sampleSchedule(2)); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(fake.sent))
	}

	rcpts, err := fake.sent[0].GetRecipients()
	if err != nil {
		t.Fatal(err)
	}
	if len(rcpts) != 2 {
		t.Errorf("recipients = %v", rcpts)
	}

	subj := fake.sent[0].GetGenHeader(mail.HeaderSubject)
	if len(subj) != 1 || subj[0] != "Contest digest: 2 upcoming (2026-01-29)" {
		t.Errorf("subject = %v", subj)
	}
}

func TestEmailNotifier_BadAddress(t *testing.T) {
	n := &EmailNotifier{client: &fakeMailer{}, from: "not an address", to: []string{"a@example.com"}}
	if err := n.Notify(context.Background(), sampleSchedule(1)); err == nil {
		t.Error("Notify() should reject an invalid sender")
	}
}

func TestNewEmailNotifier_Validation(t *testing.T) {
	if _, err := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com"}); err == nil {
		t.Error("expected error without recipients")
	}
	n, err := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "bot@example.com", Password: "x", To: []string{"a@example.com"}})
	if err != nil {
		t.Fatalf("NewEmailNotifier() error: %v", err)
	}
	if n.from != "bot@example.com" {
		t.Errorf("from = %q, want username fallback", n.from)
	}
}
