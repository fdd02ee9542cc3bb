package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"salience/internal/config"
	"salience/internal/logging"
)

// StdinPath selects standard input as the document source.
const StdinPath = "-"

var (
	// ErrTooLarge reports input beyond the configured byte limit.
	ErrTooLarge = errors.New("document exceeds size limit")
	// ErrInvalidURL reports a URL that is not absolute http(s).
	ErrInvalidURL = errors.New("invalid document url")
)

// Document is loaded input ready for summarization.
type Document struct {
	Title  string `json:"title,omitempty"`
	Text   string `json:"text"`
	Origin string `json:"origin"`
}

// Request names one document. Exactly one of Path or URL is used; URL wins
// when both are set. HTML forces article extraction for files and stdin.
type Request struct {
	Path string
	URL  string
	HTML bool
}

// Reader loads documents.
type Reader struct {
	client    *http.Client
	stdin     io.Reader
	userAgent string
	maxBytes  int64
	logger    *slog.Logger
}

// Option customizes a Reader.
type Option func(*Reader)

// WithHTTPClient replaces the HTTP client used for URL fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Reader) {
		if client != nil {
			r.client = client
		}
	}
}

// WithStdin replaces standard input.
func WithStdin(stdin io.Reader) Option {
	return func(r *Reader) {
		r.stdin = stdin
	}
}

// NewReader builds a Reader from the [fetch] config section.
func NewReader(cfg config.Fetch, logger *slog.Logger, opts ...Option) *Reader {
	r := &Reader{
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		stdin:     os.Stdin,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
		logger:    logging.NewComponentLogger(logger, "source"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read loads the document described by req.
func (r *Reader) Read(ctx context.Context, req Request) (Document, error) {
	switch {
	case strings.TrimSpace(req.URL) != "":
		return r.Fetch(ctx, req.URL)
	case req.Path == "" || req.Path == StdinPath:
		return r.ReadDocument(r.stdin, "stdin", req.HTML)
	default:
		return r.ReadFile(req.Path, req.HTML)
	}
}

// ReadFile loads a document from disk. Files ending in .html or .htm are
// treated as HTML regardless of the html flag.
func (r *Reader) ReadFile(path string, html bool) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		html = true
	}
	return r.ReadDocument(f, path, html)
}

// ReadDocument loads a document from an arbitrary reader.
func (r *Reader) ReadDocument(in io.Reader, origin string, html bool) (Document, error) {
	data, err := r.readLimited(in)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", origin, err)
	}
	if html {
		return extractArticle(data, origin, nil)
	}
	return Document{Text: string(data), Origin: origin}, nil
}

// Fetch downloads rawURL. HTML responses are reduced to article text; other
// text responses are used as-is.
func (r *Reader) Fetch(ctx context.Context, rawURL string) (Document, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Document{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Document{}, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	req.Header.Set("Accept", "text/html, text/plain;q=0.9, */*;q=0.1")

	started := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("fetch url: unexpected status %d", resp.StatusCode)
	}

	data, err := r.readLimited(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("read response: %w", err)
	}

	r.logger.Debug("document fetched",
		logging.String("url", parsed.String()),
		logging.Int("status", resp.StatusCode),
		logging.Int64("body_bytes", int64(len(data))),
		logging.Duration("elapsed", time.Since(started)),
	)

	if isHTML(resp.Header.Get("Content-Type"), data) {
		return extractArticle(data, parsed.String(), parsed)
	}
	return Document{Text: string(data), Origin: parsed.String()}, nil
}

func (r *Reader) readLimited(in io.Reader) ([]byte, error) {
	if r.maxBytes <= 0 {
		return io.ReadAll(in)
	}
	data, err := io.ReadAll(io.LimitReader(in, r.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, r.maxBytes)
	}
	return data, nil
}

func extractArticle(data []byte, origin string, pageURL *url.URL) (Document, error) {
	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("extract article from %s: %w", origin, err)
	}
	return Document{
		Title:  strings.TrimSpace(article.Title),
		Text:   strings.TrimSpace(article.TextContent),
		Origin: origin,
	}, nil
}

func isHTML(contentType string, body []byte) bool {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			return mediaType == "text/html" || mediaType == "application/xhtml+xml"
		}
	}
	return strings.HasPrefix(http.DetectContentType(body), "text/html")
}
