package models

import (
	"time"
)

// Follow is a directed edge: the source user follows the destination user.
// The composite primary key doubles as the uniqueness constraint, so a
// concurrent duplicate follow fails at the store instead of racing the
// existence pre-check.
type Follow struct {
	SourceID      int64     `gorm:"primaryKey;column:source_id"`
	DestinationID int64     `gorm:"primaryKey;column:destination_id"`
	CreatedAt     time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Source      *User `gorm:"foreignKey:SourceID;references:ID;constraint:OnDelete:CASCADE"`
	Destination *User `gorm:"foreignKey:DestinationID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}
