package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/contest-digest/internal/config"
	"github.com/pfrederiksen/contest-digest/internal/logger"
	"github.com/pfrederiksen/contest-digest/internal/notifier"
	"github.com/pfrederiksen/contest-digest/internal/telegram"
)

// Notification channels accepted by --via
const (
	ViaDryRun   = "dry-run"
	ViaTelegram = "telegram"
	ViaTwitter  = "twitter"
	ViaEmail    = "email"
)

type notifyOptions struct {
	via       []string
	platforms []string
	match     string
}

func newNotifyCmd(root *rootOptions) *cobra.Command {
	opts := &notifyOptions{}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Post the weekly digest to Telegram, Twitter or email",
		Long: `Fetch the schedule and post the copy-as-text digest through each channel
named by --via. Credentials come from the notify.* configuration keys
(for example CONTEST_NOTIFY_TELEGRAM_BOT_TOKEN).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotify(cmd, root, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.via, "via", []string{ViaDryRun}, "Channels: dry-run, telegram, twitter, email")
	cmd.Flags().StringSliceVar(&opts.platforms, "platform", nil, "Only these platforms")
	cmd.Flags().StringVar(&opts.match, "match", "", "Filter expression")

	return cmd
}

func runNotify(cmd *cobra.Command, root *rootOptions, opts *notifyOptions) error {
	f, err := buildFilter(opts.platforms, opts.match)
	if err != nil {
		return err
	}

	rt, err := setup(root)
	if err != nil {
		return err
	}

	notifiers, err := buildNotifiers(rt.cfg, opts.via, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	sched, err := rt.aggregator.Current(cmd.Context())
	if err != nil {
		// an empty digest is worse than none
		return fmt.Errorf("fetching contests: %w", err)
	}
	if sched.Error != "" {
		logger.Warn("Posting digest from cached schedule", logger.Fields{"error": sched.Error})
	}
	sched = f.Apply(sched)

	var errs []error
	for i, n := range notifiers {
		if err := n.Notify(cmd.Context(), sched); err != nil {
			logger.Error("Notification failed", logger.Fields{"via": opts.via[i]}, err)
			errs = append(errs, fmt.Errorf("%s: %w", opts.via[i], err))
			continue
		}
		logger.IncrCounter("notify.sent")
		logger.Info("Digest posted", logger.Fields{"via": opts.via[i], "contests": sched.Len()})
	}

	return errors.Join(errs...)
}

// buildNotifiers creates one notifier per --via value, in order
func buildNotifiers(cfg *config.Config, via []string, dryRunOut io.Writer) ([]notifier.Notifier, error) {
	if len(via) == 0 {
		return nil, fmt.Errorf("--via needs at least one channel")
	}

	out := make([]notifier.Notifier, 0, len(via))
	for _, v := range via {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case ViaDryRun:
			if dryRunOut == nil {
				dryRunOut = os.Stdout
			}
			out = append(out, notifier.NewDryRunNotifier(dryRunOut))
		case ViaTelegram:
			client, err := telegram.NewClient(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
			if err != nil {
				return nil, fmt.Errorf("telegram: %w", err)
			}
			out = append(out, notifier.NewTelegramNotifier(client))
		case ViaTwitter:
			tw := cfg.Notify.Twitter
			n, err := notifier.NewTwitterNotifier(notifier.TwitterCredentials{
				APIKey:       tw.APIKey,
				APISecret:    tw.APISecret,
				AccessToken:  tw.AccessToken,
				AccessSecret: tw.AccessSecret,
			})
			if err != nil {
				return nil, fmt.Errorf("twitter: %w", err)
			}
			out = append(out, n)
		case ViaEmail:
			em := cfg.Notify.Email
			n, err := notifier.NewEmailNotifier(notifier.SMTPConfig{
				Host:     em.Host,
				Port:     em.Port,
				Username: em.Username,
				Password: em.Password,
				From:     em.From,
				To:       em.To,
				SSL:      em.SSL,
			})
			if err != nil {
				return nil, fmt.Errorf("email: %w", err)
			}
			out = append(out, n)
		default:
			return nil, fmt.Errorf("unknown channel %q (use dry-run, telegram, twitter or email)", v)
		}
	}
	return out, nil
}
