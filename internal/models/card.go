package models

import "time"

// CardData holds the fields parsed from one or both sides of a student ID
// card. A single record is used for a parsed front side, a parsed back side
// and the merged result; CardType says which one it is (FRONT, BACK,
// UNKNOWN or MERGED). Empty string means the field was not found or failed
// validation.
type CardData struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `json:"name"`
	RegisterNumber   string    `gorm:"index" json:"register_number"`
	Programme        string    `json:"programme"`
	BloodGroup       string    `json:"blood_group"`
	DateOfBirth      string    `json:"date_of_birth"`
	Address          string    `gorm:"type:text" json:"address"`
	Pin              string    `json:"pin"`
	PermanentContact string    `json:"permanent_contact"`
	EmergencyContact string    `json:"emergency_contact"`
	Email            string    `json:"email"`
	ValidFrom        string    `json:"valid_from"`
	ValidTo          string    `json:"valid_to"`
	Institution      string    `json:"institution"`
	Faculty          string    `json:"faculty"`
	RawText          string    `gorm:"type:text" json:"raw_text"`
	FileName         string    `json:"file_name"`
	Verified         bool      `json:"verified"`
	CardType         string    `json:"card_type"`
	CreatedAt        time.Time `json:"created_at"`
}

func (CardData) TableName() string { return "id_card_records" }
