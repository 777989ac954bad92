package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

func listCandidatesHandler(candidates *candidate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := candidate.Filter{
			Search:       q.Get("search"),
			Status:       q.Get("status"),
			PositionCode: q.Get("position"),
			Created:      candidate.CreatedBucket(q.Get("created")),
		}

		rows, err := candidates.FilteredDirectory(r.Context(), f, time.Now())
		if err != nil {
			handleCandidateError(w, err)
			return
		}

		out := make([]CandidateResponse, 0, len(rows))
		for _, c := range rows {
			out = append(out, toCandidateResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCandidateHandler returns the candidate plus its appointments for the
// detail panel. The appointment fetch is secondary: a failure degrades to an
// empty list and is logged, it never fails the panel.
func getCandidateHandler(candidates *candidate.Service, bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		c, err := candidates.Get(r.Context(), id)
		if err != nil {
			handleCandidateError(w, err)
			return
		}

		appts, err := bookings.AppointmentsForCandidate(r.Context(), id)
		if err != nil {
			log.Printf("candidate detail: appointment fetch failed for %s, rendering empty: %v", id, err)
			appts = nil
		}

		writeJSON(w, http.StatusOK, CandidateDetailResponse{
			Candidate:    toCandidateResponse(*c),
			Appointments: toAppointmentResponses(appts),
		})
	}
}

func editCandidateHandler(candidates *candidate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		var req EditCandidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		c, err := candidates.EditField(r.Context(), id, req.Field, req.Value)
		if err != nil {
			handleCandidateError(w, err)
			return
		}

		// The full row goes back so the caller can refresh both the selected
		// candidate and the matching entry in its directory list.
		writeJSON(w, http.StatusOK, toCandidateResponse(*c))
	}
}

func listPositionsHandler(candidates *candidate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		positions, err := candidates.Positions(r.Context())
		if err != nil {
			handleCandidateError(w, err)
			return
		}

		out := make([]PositionResponse, 0, len(positions))
		for _, p := range positions {
			out = append(out, PositionResponse{Code: p.Code, Title: p.Title})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleCandidateError(w http.ResponseWriter, err error) {
	writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
		var vErr *candidate.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusUnprocessableEntity, codeValidationError, vErr.Error())
		case errors.Is(err, candidate.ErrCandidateNotFound):
			writeError(w, http.StatusNotFound, "candidate_not_found", err.Error())
		case errors.Is(err, candidate.ErrUnknownField):
			writeError(w, http.StatusBadRequest, codeValidationError, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
		}
	})
}
