package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Analysis lifecycle values for JournalEntry.AnalysisType.
const (
	AnalysisTypeAI       = "ai"
	AnalysisTypeFallback = "fallback"
)

// JournalEntry is one trade/journal record. Conversation turns live in
// journal_messages; the analysis fields are written at most once.
type JournalEntry struct {
	ID     string `gorm:"type:varchar(36);primaryKey"`
	UserID string `gorm:"type:varchar(64);not null;index"`

	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null"`
	Emotion     string `gorm:"type:varchar(50)"`
	Activity    string `gorm:"type:varchar(100)"`

	ProfitLoss decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	ImageURL  *string `gorm:"type:text"`
	ImagePath *string `gorm:"type:text"`

	Quotes datatypes.JSON `gorm:"type:jsonb"`

	Analysis        *string    `gorm:"type:text"`
	AnalysisType    *string    `gorm:"type:varchar(20)"`
	AnalysisWarning *string    `gorm:"type:text"`
	AnalyzedAt      *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

func (e *JournalEntry) HasImage() bool {
	if e == nil {
		return false
	}
	return (e.ImageURL != nil && *e.ImageURL != "") || (e.ImagePath != nil && *e.ImagePath != "")
}

func (e *JournalEntry) HasAnalysis() bool {
	if e == nil {
		return false
	}
	return e.Analysis != nil && *e.Analysis != ""
}
