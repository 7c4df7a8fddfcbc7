package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/cache"
	"github.com/nguyentantai21042004/cutsheet/internal/config"
	"github.com/nguyentantai21042004/cutsheet/internal/history"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"github.com/nguyentantai21042004/cutsheet/internal/processor"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
	"github.com/nguyentantai21042004/cutsheet/internal/templates"
)

const testSRT = `1
00:00:01,000 --> 00:00:04,000
Welcome back to the workshop everyone

2
00:00:05,000 --> 00:00:09,500
Today we are cutting the interview footage
`

type fakeAnalyzer struct {
	result string
	err    error
}

func (f *fakeAnalyzer) Analyze(context.Context, string, string) (string, error) {
	return f.result, f.err
}

func (f *fakeAnalyzer) CacheStats() cache.Stats {
	return cache.Stats{Entries: 1, Hits: 2, Misses: 3}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, an *fakeAnalyzer) *Server {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		Gemini: config.GeminiConfig{APIKeys: []string{"test"}},
		Paths:  config.PathsConfig{Templates: filepath.Join(dir, "templates")},
		Limits: config.LimitsConfig{MaxFileSize: 1024},
		RateLimit: config.RateLimitConfig{
			Requests: 3,
			Window:   time.Minute,
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Paths.Templates, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.Templates, "promo.txt"), []byte("PROMO {scenes}"), 0644); err != nil {
		t.Fatal(err)
	}

	log := logger.New("error")
	tpl, err := templates.New(cfg.Paths.Templates, log)
	if err != nil {
		t.Fatal(err)
	}
	store, err := history.New(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	proc := processor.New(cfg, subtitle.New(log), tpl, an, store, log)
	return New(cfg, proc, tpl, an, store, log)
}

func upload(t *testing.T, path, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(content)
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestCreateEditList(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{result: "## Scene 1\nwide shot"})

	req := upload(t, "/v1/edit-lists", "talk.srt", []byte(testSRT), map[string]string{"template": "promo"})
	req.Header.Set(requestIDHeader, "req-42")
	rec := serve(s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(requestIDHeader); got != "req-42" {
		t.Errorf("X-Request-ID = %q", got)
	}

	var out editListOutput
	decodeJSON(t, rec, &out)
	if out.RequestID != "req-42" || out.Template != "promo" || out.Filename != "talk.srt" {
		t.Errorf("output = %+v", out)
	}
	if out.EditList != "## Scene 1\nwide shot" {
		t.Errorf("EditList = %q", out.EditList)
	}
	if out.Document.Stats.CueCount != 2 || out.Document.Stats.TotalDuration != 7.5 {
		t.Errorf("Stats = %+v", out.Document.Stats)
	}
	if out.Document.Format != subtitle.FormatSRT {
		t.Errorf("Format = %q", out.Document.Format)
	}

	hist := serve(s, httptest.NewRequest(http.MethodGet, "/v1/history?limit=5", nil))
	var ho historyOutput
	decodeJSON(t, hist, &ho)
	if len(ho.Records) != 1 || ho.Records[0].RequestID != "req-42" || ho.Records[0].Status != history.StatusSucceeded {
		t.Errorf("history = %+v", ho.Records)
	}
}

func TestCreateEditListErrors(t *testing.T) {
	tests := []struct {
		name       string
		analyzer   *fakeAnalyzer
		filename   string
		content    []byte
		fields     map[string]string
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{
			name:       "missing file",
			analyzer:   &fakeAnalyzer{},
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_request",
		},
		{
			name:       "unsupported extension",
			analyzer:   &fakeAnalyzer{},
			filename:   "talk.txt",
			content:    []byte(testSRT),
			wantStatus: http.StatusUnsupportedMediaType,
			wantKind:   "unsupported_format",
		},
		{
			name:       "too large",
			analyzer:   &fakeAnalyzer{},
			filename:   "talk.srt",
			content:    bytes.Repeat([]byte("a"), 2048),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantKind:   "file_too_large",
		},
		{
			name:       "undecodable with requested encoding",
			analyzer:   &fakeAnalyzer{},
			filename:   "talk.srt",
			content:    []byte("1\n00:00:01,000 --> 00:00:02,000\n\xff\xfe broken text here\n"),
			fields:     map[string]string{"encoding": "utf-8"},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "decode_failed",
		},
		{
			name:       "rate limited provider",
			analyzer:   &fakeAnalyzer{err: &analyzer.Error{Kind: analyzer.KindRateLimited, Attempts: 3}},
			filename:   "talk.srt",
			content:    []byte(testSRT),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   "rate_limited",
			wantMsg:    analyzer.FailureMessage,
		},
		{
			name:       "request failed",
			analyzer:   &fakeAnalyzer{err: &analyzer.Error{Kind: analyzer.KindRequestFailed, Attempts: 1}},
			filename:   "talk.srt",
			content:    []byte(testSRT),
			wantStatus: http.StatusBadGateway,
			wantKind:   "request_failed",
			wantMsg:    analyzer.FailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.analyzer)
			rec := serve(s, upload(t, "/v1/edit-lists", tt.filename, tt.content, tt.fields))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var out errorOutput
			decodeJSON(t, rec, &out)
			if out.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", out.Kind, tt.wantKind)
			}
			if tt.wantMsg != "" && out.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", out.Message, tt.wantMsg)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{err: &analyzer.Error{Kind: analyzer.KindRequestFailed}})

	vtt := "WEBVTT\n\n00:01.000 --> 00:04.000 align:start\nWelcome back to the workshop everyone\n\nbroken block\n"
	rec := serve(s, upload(t, "/v1/stats", "talk.vtt", []byte(vtt), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var out documentOutput
	decodeJSON(t, rec, &out)
	if out.Format != subtitle.FormatVTT || out.Stats.CueCount != 1 || out.Stats.TotalDuration != 3 {
		t.Errorf("output = %+v", out)
	}
	if out.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", out.Skipped)
	}
}

func TestTemplates(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/v1/templates", nil))
	var list templatesOutput
	decodeJSON(t, rec, &list)
	if len(list.Templates) != 2 || list.Templates[0] != "default" || list.Templates[1] != "promo" {
		t.Errorf("templates = %v", list.Templates)
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/v1/templates/promo", nil))
	var tpl templateOutput
	decodeJSON(t, rec, &tpl)
	if tpl.Content != "PROMO {scenes}" || !tpl.Valid {
		t.Errorf("template = %+v", tpl)
	}

	if err := os.WriteFile(filepath.Join(s.cfg.Paths.Templates, "short.txt"), []byte("SHORT {scenes}"), 0644); err != nil {
		t.Fatal(err)
	}
	rec = serve(s, httptest.NewRequest(http.MethodPost, "/v1/templates/reload", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("reload status = %d", rec.Code)
	}
	decodeJSON(t, rec, &list)
	if len(list.Templates) != 3 {
		t.Errorf("templates after reload = %v", list.Templates)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out healthOutput
	decodeJSON(t, rec, &out)
	if out.Status != "ok" || out.Cache.Hits != 2 {
		t.Errorf("health = %+v", out)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing generated request id")
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{result: "## Scene 1\nwide shot"})

	for i := 0; i < 3; i++ {
		rec := serve(s, upload(t, "/v1/stats", "talk.srt", []byte(testSRT), nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec := serve(s, upload(t, "/v1/stats", "talk.srt", []byte(testSRT), nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	// Other routes are not limited.
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/v1/templates", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("templates status = %d", rec.Code)
	}
}

func TestClientLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newClientLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests must pass")
	}
	if l.Allow("a") {
		t.Error("third request in window must be limited")
	}
	if !l.Allow("b") {
		t.Error("other clients are independent")
	}

	now = now.Add(30 * time.Second)
	if !l.Allow("a") {
		t.Error("one token refills after window/requests")
	}

	now = now.Add(5 * time.Minute)
	l.Allow("c")
	if _, ok := l.clients["b"]; ok {
		t.Error("idle client not swept")
	}
}
