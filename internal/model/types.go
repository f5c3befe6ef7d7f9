package model

import "time"

// DefaultBio is used for accounts created without a bio.
const DefaultBio = "Introduce yourself"

// DefaultTopicName is the topic seeded into a freshly provisioned account.
const DefaultTopicName = "Default Topic"

// MaterialType is the closed set of clip kinds.
type MaterialType string

const (
	TypeWebpage MaterialType = "webpage"
	TypeVideo   MaterialType = "video"
	TypeBook    MaterialType = "book"
	TypePodcast MaterialType = "podcast"
)

// Valid reports whether t is one of the four known material types.
func (t MaterialType) Valid() bool {
	switch t {
	case TypeWebpage, TypeVideo, TypeBook, TypePodcast:
		return true
	}
	return false
}

// Material is a single clipped study item. Type, Title, URL and DateAdded are
// immutable after creation; Rating and Completed may be updated later.
type Material struct {
	Type      MaterialType `json:"type"`
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Rating    float64      `json:"rating"`
	Completed bool         `json:"completed"`
	DateAdded time.Time    `json:"dateAdded"`
}

// CategorySet holds the four per-type buckets of a topic. Buckets keep
// insertion order and are append-only.
type CategorySet struct {
	Webpage []Material `json:"webpage"`
	Video   []Material `json:"video"`
	Book    []Material `json:"book"`
	Podcast []Material `json:"podcast"`
}

// Bucket returns a pointer to the bucket for t so callers can append in place.
// Returns nil for an unknown type.
func (c *CategorySet) Bucket(t MaterialType) *[]Material {
	switch t {
	case TypeWebpage:
		return &c.Webpage
	case TypeVideo:
		return &c.Video
	case TypeBook:
		return &c.Book
	case TypePodcast:
		return &c.Podcast
	}
	return nil
}

// Normalize replaces nil buckets with empty slices so every topic serializes
// with all four keys present. Aggregates written by older versions may be
// missing buckets; callers must not assume they exist.
func (c *CategorySet) Normalize() {
	if c.Webpage == nil {
		c.Webpage = []Material{}
	}
	if c.Video == nil {
		c.Video = []Material{}
	}
	if c.Book == nil {
		c.Book = []Material{}
	}
	if c.Podcast == nil {
		c.Podcast = []Material{}
	}
}

// Topic is a named grouping of materials. ID is assigned when the topic is
// first persisted and is opaque to callers.
type Topic struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name"`
	Categories CategorySet `json:"categories"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewTopic returns a topic with all four buckets present and empty.
func NewTopic(name string, now time.Time) Topic {
	t := Topic{Name: name, CreatedAt: now}
	t.Categories.Normalize()
	return t
}

// User is the full owned aggregate for one account. ExternalID is the
// identity-provider subject id and the sole lookup key; the store's own row
// identity is never exposed.
type User struct {
	ExternalID string    `json:"firebaseUID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio"`
	Topics     []Topic   `json:"topics"`
	CreatedAt  time.Time `json:"createdAt"`
}
