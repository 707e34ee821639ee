package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"datesheet/internal/render"
)

// parseYearMonth extracts the numeric year and month path values.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	year, err = pathInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	month, err = pathInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, raw)
	}
	return v, nil
}

// writeError reports any failure as a plain-text 500.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("error: " + err.Error()))
}

func writePDF(w http.ResponseWriter, year, month int, pdf []byte) {
	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", `filename="`+render.Filename(year, month)+`"`)
	h.Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
