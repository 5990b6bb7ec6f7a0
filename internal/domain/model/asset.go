package model

import "time"

// Asset is one uploaded proof (screenshot) belonging to a participation.
// PerceptualHash is nil until the image_hash job has run.
type Asset struct {
	ID              string     `json:"id"                        db:"id"`
	ParticipationID string     `json:"participation_id"          db:"participation_id"`
	Slot            int        `json:"slot"                      db:"slot"`
	StorageKey      string     `json:"storage_key"               db:"storage_key"`
	PerceptualHash  *string    `json:"perceptual_hash,omitempty" db:"perceptual_hash"`
	HashedAt        *time.Time `json:"hashed_at,omitempty"       db:"hashed_at"`
	CreatedAt       time.Time  `json:"created_at"                db:"created_at"`
}
