package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/dashboard"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
)

func dashboardMetricsHandler(metrics *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := metrics.Metrics(r.Context(), time.Now())
		if err != nil {
			writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
			})
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// allEvaluationsHandler serves the results viewer: every evaluation row,
// grouped per candidate so the client joins by ID instead of scanning.
func allEvaluationsHandler(results *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grouped, err := results.ResultsByCandidate(r.Context())
		if err != nil {
			writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
			})
			return
		}

		out := make(map[string][]EvaluationResponse, len(grouped))
		for cid, evals := range grouped {
			rows := make([]EvaluationResponse, 0, len(evals))
			for _, e := range evals {
				rows = append(rows, toEvaluationResponse(e))
			}
			out[cid.String()] = rows
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func allExecutionLogsHandler(results *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grouped, err := results.ProgressByCandidate(r.Context())
		if err != nil {
			writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
			})
			return
		}

		out := make(map[string][]ExecutionLogResponse, len(grouped))
		for cid, logs := range grouped {
			rows := make([]ExecutionLogResponse, 0, len(logs))
			for _, l := range logs {
				rows = append(rows, toExecutionLogResponse(l))
			}
			out[cid.String()] = rows
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func candidateEvaluationsHandler(results *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		evals, err := results.CandidateEvaluations(r.Context(), id)
		if err != nil {
			writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
			})
			return
		}

		out := make([]EvaluationResponse, 0, len(evals))
		for _, e := range evals {
			out = append(out, toEvaluationResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func candidateLogsHandler(results *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationError, "id must be a valid UUID")
			return
		}

		logs, err := results.CandidateLogs(r.Context(), id)
		if err != nil {
			writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
			})
			return
		}

		out := make([]ExecutionLogResponse, 0, len(logs))
		for _, l := range logs {
			out = append(out, toExecutionLogResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}
