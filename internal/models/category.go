package models

import (
	"time"

	"github.com/google/uuid"
)

// Category - категория видео; фильтр лент videos/search/suggestions.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}
