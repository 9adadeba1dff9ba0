package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntry records one successful mutation. It is written in the same
// transaction as the mutation itself.
type AuditEntry struct {
	ID         uint   `gorm:"primaryKey"`
	ActorID    uint   `gorm:"not null;index"`
	Action     string `gorm:"not null;size:64"`
	TargetType string `gorm:"not null;size:32"`
	TargetID   uint   `gorm:"not null"`
	Details    datatypes.JSON
	CreatedAt  time.Time
}
