package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Difficulty levels a project idea may carry.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether s is one of the accepted difficulty levels.
func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}

// StackItem is one technology-stack entry of a project idea. All three fields
// are required.
type StackItem struct {
	Frontend string `json:"frontend"`
	Backend  string `json:"backend"`
	API      string `json:"api"`
}

// Complete reports whether every required field of the entry is populated.
func (s StackItem) Complete() bool {
	return s.Frontend != "" && s.Backend != "" && s.API != ""
}

// Project represents a project idea authored by a user. Date is assigned by
// the server at creation and never changes afterwards.
type Project struct {
	ID          uuid.UUID                      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string                         `json:"name" db:"name" gorm:"type:text;not null"`
	Description string                         `json:"description" db:"description" gorm:"type:text;not null"`
	Difficulty  string                         `json:"difficulty" db:"difficulty" gorm:"type:text;not null"`
	Date        time.Time                      `json:"date" db:"date" gorm:"type:timestamp;not null"`
	Likes       int                            `json:"likes" db:"likes" gorm:"type:integer;not null"`
	UserID      uuid.UUID                      `json:"user" db:"user_id" gorm:"type:uuid;not null;index"`
	Stack       datatypes.JSONSlice[StackItem] `json:"stack" db:"stack" gorm:"type:jsonb"`
}
