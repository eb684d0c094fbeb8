package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/digest"
)

// TweetLimit is the maximum tweet length in characters
const TweetLimit = 280

// TwitterCredentials holds the OAuth 1.0a user-context keys
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// statusUpdater is the part of twitter.StatusService used here
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts the digest as a single tweet
type TwitterNotifier struct {
	statuses statusUpdater
}

// NewTwitterNotifier creates a Twitter notifier. All four credentials are required.
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses}, nil
}

// Notify posts the digest, truncated to the tweet limit
func (n *TwitterNotifier) Notify(ctx context.Context, s *contest.Schedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tweet := formatTweet(s)
	if _, _, err := n.statuses.Update(tweet, nil); err != nil {
		return fmt.Errorf("failed to post tweet: %w", err)
	}
	return nil
}

// formatTweet renders the digest and trims it to TweetLimit
func formatTweet(s *contest.Schedule) string {
	return digest.Truncate(digest.Format(s), TweetLimit)
}
