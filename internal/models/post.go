package models

import (
	"database/sql"
	"time"
)

// MaxPostTextLen is the column width of posts.text.
const MaxPostTextLen = 128

// Post represents a short text post
type Post struct {
	ID          int64        `gorm:"primaryKey;autoIncrement;column:id"`
	Text        string       `gorm:"type:varchar(128);not null;column:text"`
	CreatedByID int64        `gorm:"not null;index;column:created_by_id"`
	CreatedAt   time.Time    `gorm:"not null;column:created_at"`
	// EditedAt maps to updated_at but avoids gorm's UpdatedAt naming
	// convention, which would auto-stamp the column on create. It stays
	// NULL until the first edit.
	EditedAt sql.NullTime `gorm:"column:updated_at"`

	// Relationships
	CreatedBy *User `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}
