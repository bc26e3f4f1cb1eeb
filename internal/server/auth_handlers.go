package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/service"
)

func (h *APIHandlers) register(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.Auth.Register(r.Context(), service.RegisterInput{
		Email:           payload.Email,
		Password:        payload.Password,
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		AvgCycleLength:  payload.AvgCycleLength,
		AvgPeriodLength: payload.AvgPeriodLength,
	})
	if err != nil {
		h.fail(w, r, err, "register user")
		return
	}
	respondJSON(w, http.StatusCreated, toAuthResponse("Registration successful", res))
}

func (h *APIHandlers) login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.fail(w, r, err, "log in")
		return
	}
	respondJSON(w, http.StatusOK, toAuthResponse("Login successful", res))
}

// refresh accepts the refresh token either in the body or as a bearer token.
func (h *APIHandlers) refresh(w http.ResponseWriter, r *http.Request) {
	var payload refreshRequest
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, errBodyRequired) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token := strings.TrimSpace(payload.RefreshToken)
	if token == "" {
		token, _ = auth.BearerToken(r)
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "refresh token is required")
		return
	}

	access, err := h.svc.Auth.Refresh(r.Context(), token)
	if err != nil {
		h.fail(w, r, err, "refresh token")
		return
	}
	respondJSON(w, http.StatusOK, accessTokenResponse{AccessToken: access})
}

// logout is stateless: tokens simply expire.
func (h *APIHandlers) logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, messageResponse{Message: "Logout successful"})
}

func (h *APIHandlers) currentUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile.GetProfile(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "load user")
		return
	}
	resp := toUserResponse(profile.User)
	insights := toInsightsResponse(profile.Insights)
	resp.Insights = &insights
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var payload profileRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var upd service.ProfileUpdate
	if payload.FirstName.Set {
		upd.FirstName = &payload.FirstName.Value
	}
	if payload.LastName.Set {
		upd.LastName = &payload.LastName.Value
	}
	if payload.DateOfBirth.Set {
		dob, err := parseDate(payload.DateOfBirth.Value, "dateOfBirth")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.DateOfBirth = dob
		upd.ClearDateOfBirth = dob == nil
	}
	if payload.AvgCycleLength.Set && !payload.AvgCycleLength.Null {
		upd.AvgCycleLength = &payload.AvgCycleLength.Value
	}
	if payload.AvgPeriodLength.Set && !payload.AvgPeriodLength.Null {
		upd.AvgPeriodLength = &payload.AvgPeriodLength.Value
	}
	if payload.ProfileImageURL.Set {
		upd.ProfileImageURL = &payload.ProfileImageURL.Value
	}

	user, err := h.svc.Profile.UpdateProfile(r.Context(), currentUserID(r), upd)
	if err != nil {
		h.fail(w, r, err, "update profile")
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *APIHandlers) insights(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.Insights.ForUser(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "compute insights")
		return
	}
	respondJSON(w, http.StatusOK, toInsightsResponse(in))
}

func (h *APIHandlers) calculatePregnancy(w http.ResponseWriter, r *http.Request) {
	var payload pregnancyRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.LMP == "" {
		writeError(w, http.StatusBadRequest, "lmp is required")
		return
	}
	lmp, err := parseDate(payload.LMP, "lmp")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Insights.Pregnancy(*lmp)
	if err != nil {
		h.fail(w, r, err, "calculate pregnancy")
		return
	}
	respondJSON(w, http.StatusOK, toPregnancyResponse(p))
}
