package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/briandean03/interview-manager-staging/internal/session"
)

func signUpHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		u, err := sessions.SignUp(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, SessionResponse{
			UserID: u.ID,
			Email:  u.Email,
			Name:   u.Name,
		})
	}
}

func signInHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		token, sess, err := sessions.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SignInResponse{
			Token:   token,
			Session: toSessionResponse(sess),
		})
	}
}

func currentSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil {
			writeError(w, http.StatusUnauthorized, "invalid_session", "no session")
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func signOutHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil {
			writeError(w, http.StatusUnauthorized, "invalid_session", "no session")
			return
		}

		if err := sessions.SignOut(r.Context(), sess); err != nil {
			writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
			})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toSessionResponse(sess *session.Session) SessionResponse {
	return SessionResponse{
		UserID:    sess.UserID,
		Email:     sess.Email,
		Name:      sess.Name,
		ExpiresAt: sess.ExpiresAt,
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	writeTimeoutAware(w, err, func(w http.ResponseWriter, err error) {
		switch {
		case errors.Is(err, session.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
		case errors.Is(err, session.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email_taken", err.Error())
		case errors.Is(err, session.ErrInvalidToken), errors.Is(err, session.ErrTokenRevoked):
			writeError(w, http.StatusUnauthorized, "invalid_session", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeQueryError, err.Error())
		}
	})
}
