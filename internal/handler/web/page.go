package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"StockDash/internal/domain/models"
	"StockDash/internal/usecase"
	xhttp "StockDash/pkg/http"
	xlogger "StockDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.tmpl assets/*
var content embed.FS

const indexTemplate = "index.tmpl"

// Renderer adapts html/template to echo.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(content, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// Handler serves the dashboard page and its static assets.
type Handler struct {
	logger    *xlogger.Logger
	renderer  *Renderer
	dashboard *usecase.DashboardUseCase
	watchlist *usecase.WatchlistUseCase
}

func NewHandler(logger *xlogger.Logger, renderer *Renderer, dashboard *usecase.DashboardUseCase, watchlist *usecase.WatchlistUseCase) *Handler {
	return &Handler{logger: logger, renderer: renderer, dashboard: dashboard, watchlist: watchlist}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h.renderer
	e.GET("/", h.Index)
	e.StaticFS("/assets", echo.MustSubFS(content, "assets"))
}

// Index renders the page. The watch-list is refreshed on every load; the
// dashboard pipeline only runs when the update flag is present.
func (h *Handler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	req := &models.DashboardRequest{Symbol: h.dashboard.DefaultSymbol()}
	verrs := xhttp.ReadAndValidateRequest(c, req)

	p := newPage(req)
	p.Watchlist = buildWatchRows(h.watchlist.Refresh(ctx))

	status := http.StatusOK
	switch {
	case verrs != nil:
		p.Errors = verrs
		status = http.StatusBadRequest
	case req.Update:
		view := h.dashboard.Update(ctx, req.Params())
		section, err := buildDashboardSection(view)
		if err != nil {
			h.logger.Error("build dashboard section", xlogger.String("run_id", view.RunID), xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("could not render dashboard").WithError(err))
		}
		p.Dashboard = section
	}

	return c.Render(status, indexTemplate, p)
}
