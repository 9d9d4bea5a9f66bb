package db

import (
	"journalx/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.JournalEntry{},
		&models.JournalMessage{},
		&models.UserProfile{},
		&models.UserSettings{},
		&models.DepositRecord{},
		&models.BlownAccountRecord{},
		&models.BalanceSnapshot{},
		&models.Post{},
		&models.PostComment{},
		&models.PostLike{},
		&models.NewsletterSubscription{},
	)
}
