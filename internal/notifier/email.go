package notifier

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/digest"
)

// SMTPConfig holds the mail server and envelope settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	SSL      bool
}

// mailSender is the part of *mail.Client used here
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailNotifier mails the digest to a fixed recipient list
type EmailNotifier struct {
	client mailSender
	from   string
	to     []string
}

// NewEmailNotifier creates an email notifier with a go-mail client
func NewEmailNotifier(cfg SMTPConfig) (*EmailNotifier, error) {
	if cfg.Host == "" || len(cfg.To) == 0 {
		return nil, fmt.Errorf("smtp host and at least one recipient are required")
	}

	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.SSL {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &EmailNotifier{client: client, from: from, to: cfg.To}, nil
}

// Notify sends one message holding the digest as a plain-text body
func (n *EmailNotifier) Notify(ctx context.Context, s *contest.Schedule) error {
	msg, err := n.message(s)
	if err != nil {
		return err
	}
	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending digest mail: %w", err)
	}
	return nil
}

func (n *EmailNotifier) message(s *contest.Schedule) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(n.to...); err != nil {
		return nil, fmt.Errorf("setting recipients: %w", err)
	}
	msg.Subject(subject(s))
	msg.SetBodyString(mail.TypeTextPlain, digest.Format(s))
	return msg, nil
}

func subject(s *contest.Schedule) string {
	return fmt.Sprintf("Contest digest: %d upcoming (%s)", s.Len(), s.LastUpdated.Format("2006-01-02"))
}
