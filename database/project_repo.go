package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ideahub/ideahub-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// Find returns one page of projects matching the filter, newest first.
func (r *ProjectRepo) Find(ctx context.Context, filter ProjectFilter, page Page) ([]models.Project, error) {
	projects := make([]models.Project, 0, PageSize)
	tx := filter.apply(r.db.WithContext(ctx).Model(&models.Project{})).Order("date DESC")
	err := page.apply(tx).Find(&projects).Error
	return projects, err
}

// FindByID returns the project with the given id, or nil if no such project
// exists.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts the project and increments the owner's ideas counter in one
// transaction, so a saved project is never missing from its owner's count.
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", project.UserID).
			UpdateColumn("ideas", gorm.Expr("ideas + ?", 1)).Error
	})
}

// Update persists the project record as-is.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes the project with the given id and reports whether a record
// was actually deleted.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
