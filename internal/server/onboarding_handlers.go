package server

import (
	"net/http"

	"github.com/vanshika/arivai/internal/service"
)

func (h *APIHandlers) getOnboarding(w http.ResponseWriter, r *http.Request) {
	o, found, err := h.svc.Onboarding.Get(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "load onboarding")
		return
	}
	if !found {
		respondJSON(w, http.StatusOK, onboardingStatusResponse{IsCompleted: false})
		return
	}
	respondJSON(w, http.StatusOK, toOnboardingResponse(o))
}

func (h *APIHandlers) saveOnboarding(w http.ResponseWriter, r *http.Request) {
	var payload onboardingRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in := service.OnboardingInput{
		TypicalCycleLength: payload.TypicalCycleLength,
		PeriodDuration:     payload.PeriodDuration,
		CycleVariability:   payload.CycleVariability,
		HealthConditions:   payload.HealthConditions,
		FertilityTracking:  payload.FertilityTracking,
		TrackSymptoms:      payload.TrackSymptoms,
		DynamicPredictions: payload.DynamicPredictions,
		StressLevel:        payload.StressLevel,
		SleepPattern:       payload.SleepPattern,
		HealthNotes:        payload.HealthNotes,
	}
	if payload.LastPeriodDate != nil {
		lmp, err := parseDate(*payload.LastPeriodDate, "lastPeriodDate")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.LastPeriodDate = lmp
	}

	o, err := h.svc.Onboarding.Save(r.Context(), currentUserID(r), in)
	if err != nil {
		h.fail(w, r, err, "save onboarding")
		return
	}
	respondJSON(w, http.StatusCreated, onboardingSavedResponse{
		Message:        "Onboarding completed successfully",
		IsCompleted:    o.IsCompleted,
		ProfileMode:    o.ProfileMode,
		IsIrregular:    o.IsIrregular,
		ShowBufferDays: o.ShowBufferDays,
	})
}
