package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/XingWo/skyblessings-go/internal/adapters/http"
	"github.com/XingWo/skyblessings-go/internal/app"
	"github.com/XingWo/skyblessings-go/internal/domain"
	"github.com/XingWo/skyblessings-go/internal/ports"
)

type stubSource struct{ table domain.Table }

func (s stubSource) Table(_ context.Context) (domain.Table, error) {
	return s.table, nil
}

type stubRenderer struct {
	out  []byte
	err  error
	opts ports.RenderOptions
}

func (s *stubRenderer) Render(_ context.Context, _ domain.BlessingRecord, opts ports.RenderOptions) ([]byte, error) {
	s.opts = opts
	return s.out, s.err
}

type zeroRNG struct{}

func (zeroRNG) Intn(n int) int { return 0 }

func newTestServer(renderer ports.Renderer) *echo.Echo {
	table := domain.Table{Records: []domain.BlessingRecord{{
		Level:    domain.LevelGreat,
		Object:   "红绳",
		Color:    "绛红",
		ColorHex: "#C3272B",
		Verse:    "东风满杯，诸事顺遂",
		Activity: "出行",
		Weight:   1,
	}}}
	logger := slog.New(slog.DiscardHandler)
	svc := app.NewBlessingService(stubSource{table: table}, renderer, zeroRNG{}, logger, false)

	e := echo.New()
	httpadapter.NewHandler(svc, "testdata").Register(e)
	return e
}

func TestIndex(t *testing.T) {
	e := newTestServer(&stubRenderer{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var info httpadapter.InfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Name == "" || info.Version == "" {
		t.Errorf("incomplete info: %+v", info)
	}
	if _, ok := info.Endpoints["/blessing"]; !ok {
		t.Error("missing /blessing endpoint description")
	}
}

func TestBlessing_OK(t *testing.T) {
	renderer := &stubRenderer{out: []byte{0x89, 'P', 'N', 'G'}}
	e := newTestServer(renderer)

	req := httptest.NewRequest(http.MethodGet, "/blessing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty body")
	}
	if renderer.opts.Stroke {
		t.Error("stroke should default to off")
	}
}

func TestBlessing_StrokeParam(t *testing.T) {
	renderer := &stubRenderer{out: []byte{0x89}}
	e := newTestServer(renderer)

	req := httptest.NewRequest(http.MethodGet, "/blessing?stroke=true", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !renderer.opts.Stroke {
		t.Error("expected stroke option to be set")
	}
}

func TestBlessing_RenderFailure(t *testing.T) {
	e := newTestServer(&stubRenderer{err: errors.New("encode png: boom")})

	req := httptest.NewRequest(http.MethodGet, "/blessing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp httpadapter.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message")
	}
}

func TestFavicon_Missing(t *testing.T) {
	e := newTestServer(&stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestServer(&stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
