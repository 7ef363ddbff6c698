package web

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/dashboard"
	"github.com/j-veylop/covid-dashboard/internal/logger"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

type fakeDocs struct {
	docs map[string]template.JS
	info dashboard.Info
}

func (f fakeDocs) Document(key string) (template.JS, error) {
	doc, ok := f.docs[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", dashboard.ErrUnknownDocument, key)
	}
	return doc, nil
}

func (f fakeDocs) Info() dashboard.Info {
	return f.info
}

func newFakeDocs() fakeDocs {
	docs := make(map[string]template.JS)
	for _, key := range dashboard.Keys() {
		docs[key] = template.JS(`{"data":[],"layout":{"title":{"text":"` + key + `"}}}`)
	}
	return fakeDocs{
		docs: docs,
		info: dashboard.Info{
			HasDates:  true,
			FirstDate: models.MustDate("2020-01-20"),
			LastDate:  models.MustDate("2021-05-23"),
		},
	}
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h, err := NewRouter(newFakeDocs())
	require.NoError(t, err)

	rec := get(t, h, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, key := range dashboard.Keys() {
		assert.Contains(t, body, `id="`+key+`"`)
		assert.Contains(t, body, `{"data":[],"layout":{"title":{"text":"`+key+`"}}}`, "document %s embedded verbatim", key)
	}
	assert.Contains(t, body, "2020-01-20 to 2021-05-23")
	assert.Contains(t, body, "cdn.plot.ly")
}

func TestIndex_OnlyRoot(t *testing.T) {
	h, err := NewRouter(newFakeDocs())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, get(t, h, http.MethodGet, "/api").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, http.MethodGet, "/static/data/summary.csv").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, h, http.MethodPost, "/").Code)
}

func TestIndex_SameBytesEveryRequest(t *testing.T) {
	h, err := NewRouter(newFakeDocs())
	require.NoError(t, err)

	first := get(t, h, http.MethodGet, "/").Body.String()
	second := get(t, h, http.MethodGet, "/").Body.String()
	assert.Equal(t, first, second)
}

func TestNewRouter_MissingDocument(t *testing.T) {
	docs := newFakeDocs()
	delete(docs.docs, dashboard.KeyScatter)

	_, err := NewRouter(docs)
	assert.ErrorIs(t, err, dashboard.ErrUnknownDocument)
}

func TestIndex_WithBuiltBundle(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = filepath.Join("..", "dataset", "testdata")

	b, err := dashboard.Build(cfg)
	require.NoError(t, err)

	h, err := NewRouter(b)
	require.NoError(t, err)

	rec := get(t, h, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"choropleth"`)
	assert.Contains(t, rec.Body.String(), `"type":"scattergeo"`)
	assert.Contains(t, rec.Body.String(), "New Cases")
}

func TestServer_Serve(t *testing.T) {
	cfg := config.Default()
	cfg.ShutdownTimeout = 5 * time.Second

	srv, err := New(cfg, newFakeDocs())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), pageTitle))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRequestLogger_ReportsMiddlewareCaller(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orig := logger.Logger
	logger.Logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	defer func() { logger.Logger = orig }()

	h, err := NewRouter(newFakeDocs())
	require.NoError(t, err)
	get(t, h, http.MethodGet, "/")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Caller.File, "middleware.go"),
		"caller = %s", entries[0].Caller.File)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, "/", entries[0].ContextMap()["path"])
}
