package models

import "time"

type NewsletterSubscription struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	UserID       string    `gorm:"type:varchar(64);index"`
	SubscribedAt time.Time `gorm:"type:timestamptz;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}
