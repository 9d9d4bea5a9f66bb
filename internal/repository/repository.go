package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"journalx/internal/models"
)

type ListJournalEntriesParams struct {
	UserID  string
	Since   *time.Time
	Until   *time.Time
	Limit   int
	Offset  int
	OrderBy string
	Asc     *bool
}

type ListPostsParams struct {
	AuthorID *string
	Limit    int
	Offset   int
}

// Repository is the storage surface of the service. Append-only tables
// (messages, deposit records, blown-account records, snapshots) only ever
// gain rows; the Tx-suffixed methods are meant to run inside InTx.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Journal entries
	InsertJournalEntryTx(ctx context.Context, tx *gorm.DB, item *models.JournalEntry) error
	GetJournalEntryByID(ctx context.Context, id string) (*models.JournalEntry, error)
	GetJournalEntryForUpdateTx(ctx context.Context, tx *gorm.DB, id string) (*models.JournalEntry, error)
	ListJournalEntries(ctx context.Context, params ListJournalEntriesParams) ([]models.JournalEntry, error)
	CountJournalEntries(ctx context.Context, params ListJournalEntriesParams) (int64, error)
	// SetJournalAnalysisIfAbsent persists analysis results only when no
	// analysis is stored yet; reports whether the write happened.
	SetJournalAnalysisIfAbsent(ctx context.Context, id string, analysis string, analysisType string, warning *string, analyzedAt time.Time) (bool, error)

	// Conversation history
	CountJournalMessagesTx(ctx context.Context, tx *gorm.DB, journalID string) (int64, error)
	InsertJournalMessagesTx(ctx context.Context, tx *gorm.DB, items []models.JournalMessage) error
	UpdateJournalQuotesTx(ctx context.Context, tx *gorm.DB, id string, quotes datatypes.JSON) error
	ListJournalMessages(ctx context.Context, journalID string) ([]models.JournalMessage, error)

	// Profiles
	UpsertUserProfile(ctx context.Context, item *models.UserProfile) error
	GetUserProfileByUID(ctx context.Context, uid string) (*models.UserProfile, error)

	// Settings + balance ledger
	GetUserSettings(ctx context.Context, uid string) (*models.UserSettings, error)
	GetUserSettingsForUpdateTx(ctx context.Context, tx *gorm.DB, uid string) (*models.UserSettings, error)
	SaveUserSettingsTx(ctx context.Context, tx *gorm.DB, item *models.UserSettings) error
	UpdateUserPreferences(ctx context.Context, uid string, darkMode *bool, mouseAlerts *bool) error
	InsertDepositRecordTx(ctx context.Context, tx *gorm.DB, item *models.DepositRecord) error
	InsertBlownAccountRecordTx(ctx context.Context, tx *gorm.DB, item *models.BlownAccountRecord) error
	ListDepositRecords(ctx context.Context, uid string, limit, offset int) ([]models.DepositRecord, error)
	ListBlownAccountRecords(ctx context.Context, uid string) ([]models.BlownAccountRecord, error)
	ListUserSettings(ctx context.Context) ([]models.UserSettings, error)
	InsertBalanceSnapshot(ctx context.Context, item *models.BalanceSnapshot) error
	GetLatestBalanceSnapshotBefore(ctx context.Context, uid string, before time.Time) (*models.BalanceSnapshot, error)

	// Social
	InsertPost(ctx context.Context, item *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, params ListPostsParams) ([]models.Post, error)
	CountPosts(ctx context.Context, params ListPostsParams) (int64, error)
	DeletePostByAuthor(ctx context.Context, id string, authorID string) (int64, error)
	InsertComment(ctx context.Context, item *models.PostComment) error
	ListCommentsByPostID(ctx context.Context, postID string) ([]models.PostComment, error)
	DeleteCommentByAuthor(ctx context.Context, id string, authorID string) (int64, error)
	// InsertLike reports whether a new like row was created; a duplicate
	// (post, user) pair is a no-op.
	InsertLike(ctx context.Context, item *models.PostLike) (bool, error)
	DeleteLike(ctx context.Context, postID string, userID string) (int64, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
	HasLiked(ctx context.Context, postID string, userID string) (bool, error)

	// Newsletter
	UpsertNewsletterSubscription(ctx context.Context, item *models.NewsletterSubscription) error
	SetNewsletterActive(ctx context.Context, email string, active bool) (int64, error)
	GetNewsletterByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error)
}
