package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideahub/ideahub-backend/database"
	"github.com/ideahub/ideahub-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler    userHandler
	projectHandler projectHandler
}

// userStore is the persistence surface the user handler depends on. It is
// implemented by *database.UserRepo.
type userStore interface {
	Find(ctx context.Context, filter database.UserFilter, page database.Page) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// projectStore is the persistence surface the project handler depends on. It
// is implemented by *database.ProjectRepo.
type projectStore interface {
	Find(ctx context.Context, filter database.ProjectFilter, page database.Page) ([]models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
