// Package playlist resolves a human-readable playlist title for folder naming.
package playlist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmagar/ytgrab-cli/internal/helpers"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/runlog"
)

const (
	// DefaultTimeout bounds the single fetch attempt.
	DefaultTimeout = 10 * time.Second
	siteSuffix     = "- YouTube"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

var errNoTitle = errors.New("page has no usable title")

// Result is the outcome of a title lookup. Fallback is true when Title is
// the placeholder because the lookup failed.
type Result struct {
	Title    string
	Fallback bool
	Err      error
}

// FallbackResult returns the placeholder result for err.
func FallbackResult(err error) Result {
	return Result{Title: model.FallbackPlaylistName, Fallback: true, Err: err}
}

// Resolver fetches playlist pages over HTTP.
type Resolver struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewResolver returns a Resolver with the default timeout.
func NewResolver() *Resolver {
	return &Resolver{
		Client:  &http.Client{Timeout: DefaultTimeout},
		Timeout: DefaultTimeout,
	}
}

// Resolve fetches url once and extracts its title. It never returns an error;
// every failure produces the fallback result.
func (r *Resolver) Resolve(ctx context.Context, url string) Result {
	title, err := r.fetchTitle(ctx, url)
	if err != nil {
		runlog.Log(runlog.Entry{Event: runlog.EventTitleFallback, Link: url, Error: err.Error()})
		return FallbackResult(err)
	}
	runlog.Log(runlog.Entry{Event: runlog.EventTitleResolved, Link: url, Title: title})
	return Result{Title: title}
}

func (r *Resolver) fetchTitle(ctx context.Context, url string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	title := CleanTitle(doc.Find("title").First().Text())
	if title == "" {
		return "", errNoTitle
	}
	return title, nil
}

// CleanTitle strips the site-name suffix and turns the rest into a single
// folder name. An empty result means the title is unusable.
func CleanTitle(raw string) string {
	title := strings.Join(strings.Fields(raw), " ")
	title = strings.TrimSpace(strings.ReplaceAll(title, siteSuffix, ""))
	return helpers.DirName(title)
}
