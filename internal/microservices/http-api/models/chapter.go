package models

import "time"

type Chapter struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	MangaID    int64      `json:"manga_id" gorm:"not null;index"`
	Number     float64    `json:"number" gorm:"not null"`
	Title      *string    `json:"title,omitempty"`
	PageCount  int        `json:"page_count" gorm:"default:0"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Manga *Manga `json:"manga,omitempty" gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE;"`
}

func (Chapter) TableName() string {
	return "chapters"
}
