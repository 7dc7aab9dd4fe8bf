// Package bank fetches the question bank document. Every load goes back to
// the source; nothing is cached so edits show up on the next round.
package bank

import (
	"context"
	"embed"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

//go:embed questions.json
var defaultFS embed.FS

// maxDocumentSize bounds how much of a remote document is read.
const maxDocumentSize = 8 << 20

// Source returns the raw bank document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// HTTPSource fetches the document over HTTP, bypassing caches.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.URL, err)
	}
	return data, nil
}

func (s HTTPSource) String() string { return s.URL }

// FileSource reads the document from disk on every fetch.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return data, nil
}

func (s FileSource) String() string { return "file:" + s.Path }

// FSSource reads the document from a file system, such as the embedded
// default bank.
type FSSource struct {
	FS   fs.FS
	Name string
}

func (s FSSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := fs.ReadFile(s.FS, s.Name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Name, err)
	}
	return data, nil
}

func (s FSSource) String() string { return "fs:" + s.Name }

// Default returns the embedded twelve-question bank.
func Default() Source {
	return FSSource{FS: defaultFS, Name: "questions.json"}
}

// FromConfig picks the source: a URL wins over a path, and the embedded
// bank is used when neither is set.
func FromConfig(url, path string) Source {
	switch {
	case url != "":
		return HTTPSource{URL: url}
	case path != "":
		return FileSource{Path: path}
	default:
		return Default()
	}
}

// Loader fetches, validates and logs a bank on every call.
type Loader struct {
	src    Source
	logger *slog.Logger
}

func NewLoader(src Source, logger *slog.Logger) *Loader {
	return &Loader{src: src, logger: logger}
}

// LoadBank implements adjquiz.BankLoader.
func (l *Loader) LoadBank(ctx context.Context) ([]adjquiz.Question, error) {
	data, err := l.src.Fetch(ctx)
	if err != nil {
		l.logger.Error("question bank fetch failed", "source", l.src.String(), "error", err)
		return nil, &adjquiz.LoadError{Err: err}
	}

	questions, err := adjquiz.ParseBank(data)
	if err != nil {
		l.logger.Warn("question bank rejected",
			"source", l.src.String(),
			"digest", Digest(data),
			"problems", len(adjquiz.Messages(err)),
		)
		return nil, err
	}

	l.logger.Info("question bank loaded",
		"source", l.src.String(),
		"questions", len(questions),
		"digest", Digest(data),
	)
	return questions, nil
}

// Check implements health.Checker: the source must be reachable and valid.
func (l *Loader) Check(ctx context.Context) error {
	data, err := l.src.Fetch(ctx)
	if err != nil {
		return err
	}
	_, err = adjquiz.ParseBank(data)
	return err
}

// Digest fingerprints a bank document so log lines show when it changed.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
