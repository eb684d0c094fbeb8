package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantError  bool
		wantStatus int
	}{
		{
			name:       "successful fetch",
			body:       `<html><body><h2>Codeforces</h2></body></html>`,
			statusCode: http.StatusOK,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantError:  true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "server error",
			body:       "oops",
			statusCode: http.StatusBadGateway,
			wantError:  true,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Verify User-Agent is set
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
					t.Errorf("User-Agent = %q, should look like a browser", ua)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s := New(WithURL(server.URL))
			body, err := s.Fetch(context.Background())

			if !tt.wantError {
				if err != nil {
					t.Fatalf("Fetch() unexpected error: %v", err)
				}
				if body != tt.body {
					t.Errorf("Fetch() body = %q, want %q", body, tt.body)
				}
				return
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("Fetch() error = %v, want *FetchError", err)
			}
			if fetchErr.StatusCode != tt.wantStatus {
				t.Errorf("FetchError.StatusCode = %d, want %d", fetchErr.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(err.Error(), "status code") {
				t.Errorf("error %q should mention the status code", err.Error())
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	s := New(WithURL(server.URL), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := s.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() expected timeout error, got nil")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || !fetchErr.Timeout {
		t.Errorf("Fetch() error = %v, want timeout FetchError", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Fetch() took %v, should give up near the timeout", elapsed)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(WithURL(url)).Fetch(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("FetchError.StatusCode = %d, want 0", fetchErr.StatusCode)
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s.client == nil {
		t.Fatal("scraper client is nil")
	}
	if s.URL() != SourceURL {
		t.Errorf("URL() = %q, want %q", s.URL(), SourceURL)
	}
	if s.timeout != Timeout || s.client.Timeout != Timeout {
		t.Errorf("timeout = %v/%v, want %v", s.timeout, s.client.Timeout, Timeout)
	}

	custom := New(WithURL("https://example.com/"), WithTimeout(time.Second), WithUserAgent("test"), WithURL(""))
	if custom.URL() != "https://example.com/" || custom.timeout != time.Second || custom.userAgent != "test" {
		t.Errorf("options not applied: %+v", custom)
	}
}
