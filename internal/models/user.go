package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// UserProfile is wholly owned by the authenticated user; writes are
// create-or-merge keyed by uid.
type UserProfile struct {
	UID      string `gorm:"type:varchar(64);primaryKey"`
	Username string `gorm:"type:varchar(100)"`
	Email    string `gorm:"type:varchar(200);index"`
	Phone    string `gorm:"type:varchar(50)"`
	Avatar   string `gorm:"type:text"`

	// AlertPrefs carries {daily_loss_alerts, telegram_chat_id, webhook_url}.
	AlertPrefs        datatypes.JSON  `gorm:"type:jsonb"`
	DailyLossLimit    decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	TradingExperience string          `gorm:"type:varchar(50)"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// AlertPreferences is the decoded form of UserProfile.AlertPrefs.
type AlertPreferences struct {
	DailyLossAlerts bool   `json:"daily_loss_alerts"`
	TelegramChatID  string `json:"telegram_chat_id,omitempty"`
	WebhookURL      string `json:"webhook_url,omitempty"`
}

type UserSettings struct {
	UID                   string          `gorm:"type:varchar(64);primaryKey"`
	AccountBalance        decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	DarkMode              bool            `gorm:"not null;default:false"`
	MousePsychologyAlerts bool            `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
