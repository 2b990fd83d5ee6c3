package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/XingWo/skyblessings-go/internal/app"
	"github.com/XingWo/skyblessings-go/internal/ports"
)

const (
	serviceName = "skyblessings"
	version     = "1.0.0"
)

type Handler struct {
	svc       *app.BlessingService
	assetsDir string
}

func NewHandler(svc *app.BlessingService, assetsDir string) *Handler {
	return &Handler{svc: svc, assetsDir: assetsDir}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/blessing", h.Blessing)
	e.GET("/favicon.ico", h.Favicon)
	e.GET("/healthz", h.Healthz)
}

func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Name:    serviceName,
		Version: version,
		Endpoints: map[string]string{
			"/":            "service info",
			"/blessing":    "draw a random blessing slip and return it as a PNG",
			"/favicon.ico": "site icon",
			"/healthz":     "liveness probe",
		},
	})
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Blessing(c echo.Context) error {
	opts := ports.RenderOptions{
		Stroke: c.QueryParam("stroke") == "true",
	}

	res, err := h.svc.RenderBlessing(c.Request().Context(), opts)
	if err != nil {
		return mapError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", res.PNG)
}

func (h *Handler) Favicon(c echo.Context) error {
	path := filepath.Join(h.assetsDir, "favicon.ico")
	if _, err := os.Stat(path); err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.File(path)
}

// mapError converts a failed render into a request-level failure. One
// failed render never takes the process down; shared state is read-only
// so the next request starts clean.
func mapError(c echo.Context, err error) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	slog.Error("render failed", "request_id", requestID, "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to render blessing"})
}
