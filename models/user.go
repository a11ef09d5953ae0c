package models

import "github.com/google/uuid"

// User represents a registered account. Password material is stored as hex
// strings and never serialized to clients.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	ImageURL     string    `json:"imageUrl" db:"image_url" gorm:"type:text"`
	Ideas        int       `json:"ideas" db:"ideas" gorm:"type:integer;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	PasswordSalt string    `json:"-" db:"password_salt" gorm:"type:text;not null"`
}
