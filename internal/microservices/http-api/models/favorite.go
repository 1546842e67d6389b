package models

import "time"

type Favorite struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_manga" json:"user_id"`
	MangaID int64     `gorm:"not null;uniqueIndex:idx_favorite_user_manga" json:"manga_id"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Manga *Manga `gorm:"foreignKey:MangaID" json:"manga,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
