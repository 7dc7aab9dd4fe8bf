package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playperu/adjquiz/internal/adjquiz"
	"github.com/playperu/adjquiz/internal/bank"
	"github.com/playperu/adjquiz/internal/database"
	"github.com/playperu/adjquiz/internal/grammar"
	"github.com/playperu/adjquiz/internal/migrations"
)

// correctText is the right answer for each question of the embedded bank.
var correctText = map[string]string{
	"1": "alten", "2": "warme", "3": "neues", "4": "alten",
	"5": "netten", "6": "roten", "7": "großen", "8": "jungen",
	"9": "schlechten", "10": "kleinen", "11": "starken", "12": "kalte",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	handler  http.Handler
	sessions *Registry
	prefs    *PrefStore
}

func setupPrefs(t *testing.T) *PrefStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewPrefStore(db)
}

func newTestEnv(t *testing.T, loader adjquiz.BankLoader) *testEnv {
	t.Helper()

	book, err := grammar.Load()
	if err != nil {
		t.Fatalf("load grammar: %v", err)
	}
	if loader == nil {
		loader = bank.NewLoader(bank.Default(), discardLogger())
	}

	env := &testEnv{
		sessions: NewRegistry(time.Hour),
		prefs:    setupPrefs(t),
	}
	env.handler = newRouter(discardLogger(), Deps{
		Loader: loader,
		Quiz: adjquiz.Config{
			RoundSize:             adjquiz.DefaultRoundSize,
			RevealHintsOnComplete: true,
			References:            book,
		},
		Grammar:  book,
		Prefs:    env.prefs,
		Sessions: env.sessions,
	}, nil)
	return env
}

// do sends a JSON request and decodes the response into out when non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, out any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	if out != nil {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response (status %d): %v", method, path, rec.Code, err)
		}
	}
	return rec
}

func withCookie(c *http.Cookie) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(c) }
}

func withHeader(key, value string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func createSession(t *testing.T, e *testEnv, opts ...func(*http.Request)) (SessionResponse, *httptest.ResponseRecorder) {
	t.Helper()
	var resp SessionResponse
	rec := e.do(t, http.MethodPost, "/api/sessions", nil, &resp, opts...)
	return resp, rec
}

func visitorCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == visitorCookieName {
			return c
		}
	}
	t.Fatal("visitor cookie not set")
	return nil
}

// correctChoice finds the index of the right answer in a rendered question.
func correctChoice(t *testing.T, q adjquiz.QuestionView) int {
	t.Helper()
	want, ok := correctText[q.ID]
	if !ok {
		t.Fatalf("unknown question id %q", q.ID)
	}
	for i, c := range q.Choices {
		if c == want {
			return i
		}
	}
	t.Fatalf("question %s has no choice %q", q.ID, want)
	return -1
}

type loaderFunc func(ctx context.Context) ([]adjquiz.Question, error)

func (f loaderFunc) LoadBank(ctx context.Context) ([]adjquiz.Question, error) { return f(ctx) }
