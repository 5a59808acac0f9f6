package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AISignal records one generated AI analysis for audit and retention.
type AISignal struct {
	ID             int64          `json:"id"`
	Symbol         string         `json:"symbol"`
	Provider       string         `json:"provider"`
	Model          string         `json:"model"`
	Recommendation string         `json:"recommendation"`
	Data           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at"`
}

func (AISignal) TableName() string {
	return "ai_signals"
}
