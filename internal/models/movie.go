package models

// Movie is a single entry in a user's personal list. The composite unique
// index keeps a user from adding the same title twice; different users may
// each own a movie with the same title.
type Movie struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"size:200;not null;uniqueIndex:uidx_user_movie" validate:"required"`
	Director  string  `json:"director" gorm:"size:100;not null" validate:"required"`
	Year      int     `json:"year,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	PosterURL string  `json:"poster_url,omitempty" gorm:"size:300"`
	UserID    uint    `json:"user_id" gorm:"not null;uniqueIndex:uidx_user_movie"`
}

// MovieUpdate carries a partial field set for updating a movie. A nil field
// means "leave unchanged", which is distinct from a field explicitly set to
// its zero value.
type MovieUpdate struct {
	Name      *string  `json:"name"`
	Director  *string  `json:"director"`
	Year      *int     `json:"year"`
	Rating    *float64 `json:"rating"`
	PosterURL *string  `json:"poster_url"`
}
