package model

import (
	"time"

	"gorm.io/datatypes"
)

// StatsSnapshot records the outgoing profit statistics at each daily reset.
type StatsSnapshot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Stats     datatypes.JSON `gorm:"type:jsonb;not null" json:"stats"`
	Capital   float64        `gorm:"not null" json:"capital"`
	TakenAt   time.Time      `gorm:"not null" json:"taken_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (StatsSnapshot) TableName() string {
	return "stats_snapshots"
}
