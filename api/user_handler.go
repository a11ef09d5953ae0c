package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ideahub/ideahub-backend/auth"
	"github.com/ideahub/ideahub-backend/errs"
	"github.com/ideahub/ideahub-backend/models"
)

const minPasswordLength = 8

type userHandler struct {
	responder     Responder
	logger        zerolog.Logger
	store         userStore
	tokens        auth.TokenIssuer
	secureCookies bool
}

func newUserHandler(store userStore, tokens auth.TokenIssuer, secureCookies bool) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		store:         store,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// getAllUsers returns one page of users matching the listing query. Password
// hash and salt never serialize.
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.store.Find(r.Context(), parseUserFilter(r.URL.Query()), parsePage(r.URL.Query()))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "users", err))
			return
		}

		h.responder.Write(w, http.StatusOK, "User data was fetched successfully", map[string]any{
			"users": users,
		})
	}
}

// getUser returns a single user by id without credential fields.
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		user, err := h.store.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.Write(w, http.StatusOK, "User fetched successfully", map[string]any{
			"user": user,
		})
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates a new account and returns a session token alongside the
// user's public fields.
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Malformed request body"))
			return
		}

		if req.Username == "" || req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Missing required fields"))
			return
		}

		if len(req.Password) < minPasswordLength {
			h.responder.WriteError(w, errs.NewBadRequestError("Password must be at least 8 characters long"))
			return
		}

		// Two separate existence probes; the unique index on email backstops
		// the race between the probe and the insert.
		taken, err := h.store.UsernameTaken(r.Context(), req.Username, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewConflictError("username is already in use"))
			return
		}

		taken, err = h.store.EmailTaken(r.Context(), req.Email, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewConflictError("email is already in use"))
			return
		}

		salt, hash, err := auth.SetPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("deriving password hash failed"))
			return
		}

		user := models.User{
			ID:           uuid.New(),
			Username:     req.Username,
			Email:        req.Email,
			ImageURL:     "",
			Ideas:        0,
			PasswordHash: hash,
			PasswordSalt: salt,
		}

		if err := h.store.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("issuing token failed"))
			return
		}

		h.responder.Write(w, http.StatusOK, "User created successfully", map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login verifies credentials and starts a session. The token is set as an
// HTTP-only cookie and echoed in the body.
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Malformed request body"))
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Missing email or password"))
			return
		}

		user, err := h.store.FindByEmail(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		// Same answer for unknown email and wrong password.
		if user == nil || !auth.VerifyPassword(req.Password, user.PasswordSalt, user.PasswordHash) {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid email or password"))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("issuing token failed"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     tokenCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(auth.TokenTTL.Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})

		h.responder.Write(w, http.StatusOK, fmt.Sprintf("Login successful, Welcome %s!", user.Username), map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	ImageURL *string `json:"imageUrl"`
}

// updateUser changes the authenticated caller's own profile. Uniqueness
// probes exclude the caller's record, so resubmitting an unchanged
// username/email succeeds.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: Missing token"))
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Malformed request body"))
			return
		}

		if req.Username != nil && *req.Username != "" {
			taken, err := h.store.UsernameTaken(r.Context(), *req.Username, callerID)
			if err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewConflictError("username is already in use"))
				return
			}
		}

		if req.Email != nil && *req.Email != "" {
			taken, err := h.store.EmailTaken(r.Context(), *req.Email, callerID)
			if err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewConflictError("email is already in use"))
				return
			}
		}

		user, err := h.store.FindByID(r.Context(), callerID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		if req.Username != nil && *req.Username != "" {
			user.Username = *req.Username
		}
		if req.Email != nil && *req.Email != "" {
			user.Email = *req.Email
		}
		if req.ImageURL != nil {
			user.ImageURL = *req.ImageURL
		}

		if err := h.store.Update(r.Context(), user); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "user", err))
			return
		}

		h.responder.Write(w, http.StatusOK, "User updated successfully", map[string]any{
			"user": user,
		})
	}
}

// deleteUser removes the authenticated caller's own account.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: Missing token"))
			return
		}

		deleted, err := h.store.Delete(r.Context(), callerID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "user", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.Write(w, http.StatusOK, "User account deleted successfully", nil)
	}
}
