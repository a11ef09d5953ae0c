package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ideahub/ideahub-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Find returns one page of users matching the filter.
func (r *UserRepo) Find(ctx context.Context, filter UserFilter, page Page) ([]models.User, error) {
	users := make([]models.User, 0, PageSize)
	tx := filter.apply(r.db.WithContext(ctx).Model(&models.User{}))
	err := page.apply(tx).Find(&users).Error
	return users, err
}

// FindByID returns the user with the given id, or nil if no such user exists.
func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user with the given email, or nil if none matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether a user other than exclude already holds the
// username. Pass uuid.Nil to consider every record.
func (r *UserRepo) UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	return r.taken(ctx, "username = ?", username, exclude)
}

// EmailTaken reports whether a user other than exclude already holds the
// email. Pass uuid.Nil to consider every record.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	return r.taken(ctx, "email = ?", email, exclude)
}

func (r *UserRepo) taken(ctx context.Context, condition, value string, exclude uuid.UUID) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.User{}).Where(condition, value)
	if exclude != uuid.Nil {
		tx = tx.Where("id <> ?", exclude)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists the user record as-is.
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user with the given id and reports whether a record was
// actually deleted.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
