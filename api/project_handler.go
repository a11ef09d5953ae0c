package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ideahub/ideahub-backend/errs"
	"github.com/ideahub/ideahub-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     projectStore
	users     userStore
}

func newProjectHandler(store projectStore, users userStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		users:     users,
	}
}

// validateStack checks that every entry carries frontend, backend and api.
func validateStack(stack []models.StackItem) *errs.ApiErr {
	for _, item := range stack {
		if !item.Complete() {
			return errs.NewBadRequestError("Each stack item must include frontend, backend, api")
		}
	}
	return nil
}

// getAllProjects returns one page of projects matching the listing query,
// newest first.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.Find(r.Context(), parseProjectFilter(r.URL.Query()), parsePage(r.URL.Query()))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}

		h.responder.Write(w, http.StatusOK, "Project ideas retrieved successfully", map[string]any{
			"projects": projects,
		})
	}
}

// getProject returns a single project by id.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		project, err := h.store.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		h.responder.Write(w, http.StatusOK, "Project idea fetched successfully", map[string]any{
			"project": project,
		})
	}
}

type createProjectRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty"`
	User        string             `json:"user"`
	Stack       []models.StackItem `json:"stack"`
}

// createProject persists a new project idea and bumps the referenced user's
// ideas counter. Any authenticated caller may attribute the idea to any
// existing user; the body's user field is not compared with the caller.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Malformed request body"))
			return
		}

		if req.Name == "" || req.Description == "" || req.Difficulty == "" || req.User == "" || req.Stack == nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Missing required fields"))
			return
		}

		if !models.ValidDifficulty(req.Difficulty) {
			h.responder.WriteError(w, errs.NewBadRequestError("Difficulty must be easy, medium, or hard"))
			return
		}

		if err := validateStack(req.Stack); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ownerID, err := uuid.Parse(req.User)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("User not found"))
			return
		}

		owner, err := h.users.FindByID(r.Context(), ownerID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if owner == nil {
			h.responder.WriteError(w, errs.NewBadRequestError("User not found"))
			return
		}

		project := models.Project{
			ID:          uuid.New(),
			Name:        req.Name,
			Description: req.Description,
			Difficulty:  req.Difficulty,
			Date:        time.Now().UTC(),
			Likes:       0,
			UserID:      ownerID,
			Stack:       req.Stack,
		}

		if err := h.store.Create(r.Context(), &project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "project", err))
			return
		}

		h.responder.Write(w, http.StatusCreated, "Project idea created successfully", map[string]any{
			"project": project,
		})
	}
}

type updateProjectRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Difficulty  string              `json:"difficulty"`
	User        string              `json:"user"`
	Stack       *[]models.StackItem `json:"stack"`
}

// updateProject applies a partial update to a project the caller owns. Empty
// fields are left untouched; difficulty and stack are re-validated with the
// creation rules when supplied.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: Missing token"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		project, err := h.store.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		if project.UserID != callerID {
			h.responder.WriteError(w, errs.NewForbiddenError("Forbidden: You do not own this project idea"))
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Malformed request body"))
			return
		}

		if req.Name != "" {
			project.Name = req.Name
		}
		if req.Description != "" {
			project.Description = req.Description
		}
		if req.Difficulty != "" {
			if !models.ValidDifficulty(req.Difficulty) {
				h.responder.WriteError(w, errs.NewBadRequestError("Difficulty must be easy, medium, or hard"))
				return
			}
			project.Difficulty = req.Difficulty
		}
		if req.User != "" {
			ownerID, err := uuid.Parse(req.User)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("User not found"))
				return
			}
			project.UserID = ownerID
		}
		if req.Stack != nil {
			if err := validateStack(*req.Stack); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.Stack = *req.Stack
		}

		if err := h.store.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "project", err))
			return
		}

		h.responder.Write(w, http.StatusOK, "Project idea updated successfully", map[string]any{
			"project": project,
		})
	}
}

// deleteProject removes a project the caller owns. Ownership is checked
// before anything is deleted.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: Missing token"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		project, err := h.store.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		if project.UserID != callerID {
			h.responder.WriteError(w, errs.NewForbiddenError("Forbidden: You do not own this project idea"))
			return
		}

		deleted, err := h.store.Delete(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Project idea not found"))
			return
		}

		h.responder.Write(w, http.StatusOK, "Project idea deleted successfully", nil)
	}
}
