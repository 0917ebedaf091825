package models

import "time"

// Verification status values.
const (
	VerificationGranted       = "GRANTED"
	VerificationDenied        = "DENIED"
	VerificationNotRegistered = "NOT_REGISTERED"
)

// Verification is one face-match verification attempt against a stored card.
type Verification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CardID         uint      `json:"card_id"`
	Name           string    `json:"name"`
	RegisterNumber string    `gorm:"index" json:"register_number"`
	FaceMatchScore float64   `json:"face_match_score"`
	Status         string    `json:"status"`
	CardPayload    string    `gorm:"type:text" json:"card_payload"`
	CreatedAt      time.Time `json:"created_at"`
}

// Admin is a dashboard account allowed to manage card records.
type Admin struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex" json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
