package server

import (
	"net/http"

	"github.com/vanshika/arivai/internal/service"
)

func (h *APIHandlers) listCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.svc.Cycles.ListCycles(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "list cycles")
		return
	}
	respondJSON(w, http.StatusOK, toCycleResponses(cycles))
}

func (h *APIHandlers) createCycle(w http.ResponseWriter, r *http.Request) {
	var payload cycleRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := parseDate(payload.StartDate, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in := service.CycleInput{
		StartDate:    start,
		CycleLength:  payload.CycleLength,
		PeriodLength: payload.PeriodLength,
	}
	if payload.EndDate != nil {
		if in.EndDate, err = parseDate(*payload.EndDate, "endDate"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if payload.Notes != nil {
		in.Notes = *payload.Notes
	}

	c, err := h.svc.Cycles.CreateCycle(r.Context(), currentUserID(r), in)
	if err != nil {
		h.fail(w, r, err, "create cycle")
		return
	}
	respondJSON(w, http.StatusCreated, toCycleResponse(c))
}

func (h *APIHandlers) updateCycle(w http.ResponseWriter, r *http.Request) {
	var payload cyclePatchRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		patch service.CyclePatch
		err   error
	)
	if payload.StartDate.Set && !payload.StartDate.Null {
		if patch.StartDate, err = parseDate(payload.StartDate.Value, "startDate"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if payload.EndDate.Set {
		if patch.EndDate, err = parseDate(payload.EndDate.Value, "endDate"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.ClearEndDate = patch.EndDate == nil
	}
	if payload.CycleLength.Set && !payload.CycleLength.Null {
		patch.CycleLength = &payload.CycleLength.Value
	}
	if payload.PeriodLength.Set && !payload.PeriodLength.Null {
		patch.PeriodLength = &payload.PeriodLength.Value
	}
	if payload.Notes.Set {
		patch.Notes = &payload.Notes.Value
	}

	c, err := h.svc.Cycles.UpdateCycle(r.Context(), currentUserID(r), pathParam(r, "id"), patch)
	if err != nil {
		h.fail(w, r, err, "update cycle")
		return
	}
	respondJSON(w, http.StatusOK, toCycleResponse(c))
}

func (h *APIHandlers) listSymptoms(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("date"), "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	symptoms, err := h.svc.Cycles.ListSymptoms(r.Context(), currentUserID(r), day)
	if err != nil {
		h.fail(w, r, err, "list symptoms")
		return
	}
	respondJSON(w, http.StatusOK, toSymptomResponses(symptoms))
}

func (h *APIHandlers) createSymptom(w http.ResponseWriter, r *http.Request) {
	var payload symptomRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(payload.Date, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in := service.SymptomInput{
		Date:        date,
		SymptomType: payload.SymptomType,
		Severity:    payload.Severity,
		CycleID:     payload.CycleID,
	}
	if payload.Notes != nil {
		in.Notes = *payload.Notes
	}

	sym, err := h.svc.Cycles.LogSymptom(r.Context(), currentUserID(r), in)
	if err != nil {
		h.fail(w, r, err, "log symptom")
		return
	}
	respondJSON(w, http.StatusCreated, toSymptomResponse(sym))
}

func (h *APIHandlers) symptomPatterns(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 0)
	patterns, err := h.svc.Patterns.Patterns(r.Context(), currentUserID(r), limit)
	if err != nil {
		h.fail(w, r, err, "load symptom patterns")
		return
	}
	respondJSON(w, http.StatusOK, toPatternsResponse(patterns))
}
