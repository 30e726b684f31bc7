package models

import "time"

// Review is free-text feedback written by a user about a movie. The rating
// is optional and, when present, must lie in [0, 10]. CreatedAt is set once
// on insert and never updated.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	MovieID    uint      `json:"movie_id" gorm:"not null;index"`
	ReviewText string    `json:"review_text" gorm:"type:text;not null" validate:"required"`
	Rating     *float64  `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}
