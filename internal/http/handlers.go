package http

import (
	"fmt"
	"net/http"
	"time"

	"datesheet/internal/core"
	applog "datesheet/internal/log"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex redirects to the current month in UTC.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	target := currentMonthPath(now)

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Redirecting to current month",
		applog.FieldOperation, applog.OpRedirect, "location", target)
	http.Redirect(w, r, target, http.StatusFound)
}

// handleDatesheet renders GET /{year}/{month}.
func (s *Server) handleDatesheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.NewStructuredLogger(applog.FromContext(ctx))

	year, month, err := parseYearMonth(r)
	if err != nil {
		logger.LogError(ctx, "Invalid datesheet parameters", err, applog.OpParse,
			applog.NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", "", ""))
		writeError(w, err)
		return
	}

	start, err := core.FirstDay(year, month)
	if err != nil {
		logger.LogError(ctx, "Invalid datesheet month", err, applog.OpParse, applog.NewFields().WithMonth(year, month))
		writeError(w, err)
		return
	}

	began := time.Now()
	pdf, err := s.renderer.RenderMonth(start, s.page)
	if err != nil {
		logger.LogError(ctx, "Datesheet render failed", err, applog.OpRender, applog.NewFields().WithMonth(year, month))
		writeError(w, err)
		return
	}
	logger.LogRendered(ctx, year, month, len(pdf), time.Since(began))

	writePDF(w, year, month, pdf)
}

func currentMonthPath(now time.Time) string {
	return fmt.Sprintf("/%d/%02d", now.Year(), int(now.Month()))
}
