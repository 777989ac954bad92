package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

func weekViewHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Unparseable or missing date falls back to today inside WeekView;
		// failed reads fail open to an empty grid.
		grid := bookings.WeekView(r.Context(), r.URL.Query().Get("date"), time.Now())
		writeJSON(w, http.StatusOK, toWeekGridResponse(grid))
	}
}

func bookAppointmentHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, ok := decodeBookingRequest(w, r)
		if !ok {
			return
		}

		created, err := bookings.Book(r.Context(), appt)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(*created))
	}
}

func rescheduleAppointmentHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		appt, ok := decodeBookingRequest(w, r)
		if !ok {
			return
		}
		appt.ID = id

		updated, err := bookings.Reschedule(r.Context(), appt)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(*updated))
	}
}

func cancelAppointmentHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		if err := bookings.Cancel(r.Context(), id); err != nil {
			handleBookingError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listBlockedRangesHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranges, err := bookings.BlockedRanges(r.Context())
		if err != nil {
			handleBookingError(w, err)
			return
		}

		out := make([]BlockedRangeResponse, 0, len(ranges))
		for _, b := range ranges {
			out = append(out, toBlockedRangeResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func blockRangeHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BlockRangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		// Blocked dates are calendar days in the service's local time, not
		// instants; parsing them as UTC would shift the span near midnight.
		start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, codeValidationError, "start_date must be yyyy-MM-dd")
			return
		}

		b := schedule.BlockedRange{StartDate: start, Reason: req.Reason}
		if req.EndDate != nil {
			end, err := time.ParseInLocation("2006-01-02", *req.EndDate, time.Local)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, codeValidationError, "end_date must be yyyy-MM-dd")
				return
			}
			b.EndDate = &end
		}

		created, err := bookings.BlockRange(r.Context(), b)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBlockedRangeResponse(*created))
	}
}

func unblockRangeHandler(bookings *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		if err := bookings.UnblockRange(r.Context(), id); err != nil {
			handleBookingError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeBookingRequest(w http.ResponseWriter, r *http.Request) (schedule.Appointment, bool) {
	var req BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return schedule.Appointment{}, false
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidationError, "candidate_id must be a valid UUID")
		return schedule.Appointment{}, false
	}

	at, err := time.Parse(time.RFC3339, req.AppointmentTime)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidationError, "appointment_time must be RFC 3339")
		return schedule.Appointment{}, false
	}

	return schedule.Appointment{
		CandidateID:     candidateID,
		AppointmentTime: at,
		PositionCode:    req.PositionCode,
		QRevision:       req.QRevision,
		Notes:           req.Notes,
	}, true
}

func handleBookingError(w http.ResponseWriter, err error) {
	writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
		switch {
		case errors.Is(err, schedule.ErrCandidateNotFound):
			writeError(w, http.StatusNotFound, "candidate_not_found", err.Error())
		case errors.Is(err, schedule.ErrAppointmentNotFound):
			writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
		case errors.Is(err, schedule.ErrBlockedRangeNotFound):
			writeError(w, http.StatusNotFound, "blocked_range_not_found", err.Error())
		case errors.Is(err, schedule.ErrDayBlocked):
			writeError(w, http.StatusConflict, "day_blocked", err.Error())
		case errors.Is(err, schedule.ErrMissingTime),
			errors.Is(err, schedule.ErrMissingCandidate),
			errors.Is(err, schedule.ErrMissingStartDate),
			errors.Is(err, schedule.ErrInvalidDateRange):
			writeError(w, http.StatusUnprocessableEntity, codeValidationError, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
		}
	})
}
