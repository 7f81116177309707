package show

import (
	"time"

	"github.com/google/uuid"
)

// Show は上映回エンティティを表す
// 1つの上映回が独立した座席レイアウトを持つ（レイアウト本体は座席ストアが所有）
type Show struct {
	ID         string
	Title      string
	Genre      string
	Duration   string
	Rating     float64
	Poster     string
	TrailerURL string
	CreatedAt  time.Time
}

// New は新しい上映回を作成する
func New(title, genre, duration, poster, trailerURL string, rating float64) *Show {
	return &Show{
		ID:         uuid.NewString(),
		Title:      title,
		Genre:      genre,
		Duration:   duration,
		Rating:     rating,
		Poster:     poster,
		TrailerURL: trailerURL,
		CreatedAt:  time.Now(),
	}
}

// Validate は上映回の検証を行う
func (s *Show) Validate() error {
	if s.Title == "" {
		return ErrTitleRequired
	}
	if s.Rating < 0 || s.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
