package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/service"
)

// export returns the signed-in user's data as JSON (default) or CSV.
func (h *APIHandlers) export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	exp, err := h.svc.Export.Export(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "export data")
		return
	}

	filename := fmt.Sprintf("arivai-export-%s.%s", cycle.FormatDate(exp.GeneratedAt), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		if err := service.WriteCSV(w, exp); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to write csv export", "error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, exportResponse{
		User:        toUserResponse(exp.User),
		Cycles:      toCycleResponses(exp.Cycles),
		Symptoms:    toSymptomResponses(exp.Symptoms),
		GeneratedAt: formatTime(exp.GeneratedAt),
	})
}
