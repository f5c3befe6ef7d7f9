package model

import (
	"fmt"
	"time"
)

// MaterialInput is the wire shape accepted when a clip arrives. All fields
// except Type are optional.
type MaterialInput struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Rating    float64   `json:"rating"`
	Completed bool      `json:"completed"`
	DateAdded time.Time `json:"dateAdded"`
}

// DefaultRating is applied when a clip arrives without a usable rating.
const DefaultRating = 5

// NewMaterial is the single defaulting point for persisted materials:
// rating <= 0 becomes DefaultRating, a zero DateAdded becomes now, and
// Completed keeps its zero value unless the caller set it. Every path that
// creates a Material must go through here.
func NewMaterial(in MaterialInput, now time.Time) (Material, error) {
	t := MaterialType(in.Type)
	if !t.Valid() {
		return Material{}, fmt.Errorf("material type %q: %w", in.Type, ErrValidation)
	}
	m := Material{
		Type:      t,
		Title:     in.Title,
		URL:       in.URL,
		Rating:    in.Rating,
		Completed: in.Completed,
		DateAdded: in.DateAdded,
	}
	if m.Rating <= 0 {
		m.Rating = DefaultRating
	}
	if m.DateAdded.IsZero() {
		m.DateAdded = now
	}
	return m, nil
}
