package source_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"salience/internal/config"
	"salience/internal/source"
	"salience/internal/testsupport"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Fox Report</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Fox Report</h1>
<p>The quick brown fox jumps over the lazy dog. Observers noted the fox was remarkably quick and the dog remarkably lazy.</p>
<p>Later that day the fox returned to the meadow, where it jumped over the same dog again while the crowd watched.</p>
<p>Researchers continue to study why the quick brown fox keeps jumping over lazy dogs in this particular meadow.</p>
</article>
<footer>Copyright notice</footer>
</body>
</html>`

func newReader(opts ...source.Option) *source.Reader {
	return source.NewReader(config.Default().Fetch, nil, opts...)
}

func TestFetchHTMLExtractsArticle(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	doc, err := newReader().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(doc.Text, "quick brown fox jumps over the lazy dog") {
		t.Fatalf("expected article text, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "<p>") {
		t.Fatalf("expected markup stripped, got %q", doc.Text)
	}
	if doc.Title == "" {
		t.Fatal("expected a title")
	}
	if doc.Origin != server.URL {
		t.Fatalf("origin = %q, want %q", doc.Origin, server.URL)
	}
	if gotUA != "salience/dev" {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestFetchPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Plain <b>text</b> stays as is."))
	}))
	defer server.Close()

	doc, err := newReader().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Text != "Plain <b>text</b> stays as is." {
		t.Fatalf("unexpected text %q", doc.Text)
	}
}

func TestFetchErrors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	big := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer big.Close()

	small := config.Default().Fetch
	small.MaxBytes = 16

	tests := []struct {
		name   string
		reader *source.Reader
		url    string
		check  func(error) bool
	}{
		{"server error", newReader(), failing.URL, func(err error) bool { return strings.Contains(err.Error(), "500") }},
		{"too large", source.NewReader(small, nil), big.URL, func(err error) bool { return errors.Is(err, source.ErrTooLarge) }},
		{"ftp scheme", newReader(), "ftp://example.com/doc", func(err error) bool { return errors.Is(err, source.ErrInvalidURL) }},
		{"relative", newReader(), "/just/a/path", func(err error) bool { return errors.Is(err, source.ErrInvalidURL) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.reader.Fetch(context.Background(), tt.url)
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestFetchHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newReader().Fetch(ctx, server.URL); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "doc.txt")
	testsupport.WriteFile(t, textPath, "One sentence. Two sentences.")
	htmlPath := filepath.Join(dir, "page.html")
	testsupport.WriteFile(t, htmlPath, articleHTML)

	r := newReader()
	doc, err := r.Read(context.Background(), source.Request{Path: textPath})
	if err != nil {
		t.Fatalf("Read text: %v", err)
	}
	if doc.Text != "One sentence. Two sentences." || doc.Origin != textPath {
		t.Fatalf("unexpected document %+v", doc)
	}

	page, err := r.Read(context.Background(), source.Request{Path: htmlPath})
	if err != nil {
		t.Fatalf("Read html: %v", err)
	}
	if strings.Contains(page.Text, "<article>") || !strings.Contains(page.Text, "fox") {
		t.Fatalf("expected extracted article, got %q", page.Text)
	}

	if _, err := r.Read(context.Background(), source.Request{Path: filepath.Join(dir, "missing.txt")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadStdin(t *testing.T) {
	r := newReader(source.WithStdin(strings.NewReader("From a pipe.")))
	doc, err := r.Read(context.Background(), source.Request{Path: source.StdinPath})
	if err != nil {
		t.Fatalf("Read stdin: %v", err)
	}
	if doc.Text != "From a pipe." || doc.Origin != "stdin" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestReadStdinHTML(t *testing.T) {
	r := newReader(source.WithStdin(strings.NewReader(articleHTML)))
	doc, err := r.Read(context.Background(), source.Request{HTML: true})
	if err != nil {
		t.Fatalf("Read stdin html: %v", err)
	}
	if strings.Contains(doc.Text, "<") {
		t.Fatalf("expected markup stripped, got %q", doc.Text)
	}
}

func TestReadDocument(t *testing.T) {
	r := newReader()
	if _, ok := any(r).(io.ReaderFrom); ok {
		t.Fatal("Reader must not satisfy io.ReaderFrom")
	}

	doc, err := r.ReadDocument(strings.NewReader("Plain body."), "notes", false)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if doc.Text != "Plain body." || doc.Origin != "notes" {
		t.Fatalf("unexpected document %+v", doc)
	}

	cfg := config.Default().Fetch
	cfg.MaxBytes = 4
	small := source.NewReader(cfg, nil)
	if _, err := small.ReadDocument(strings.NewReader("too long"), "notes", false); !errors.Is(err, source.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
