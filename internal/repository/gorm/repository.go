package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journalx/internal/models"
	"journalx/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Journal entries --------------------------------------------------------

func (s *Store) InsertJournalEntryTx(ctx context.Context, tx *gorm.DB, item *models.JournalEntry) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetJournalEntryByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	if s == nil || s.db == nil || strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var item models.JournalEntry
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetJournalEntryForUpdateTx(ctx context.Context, tx *gorm.DB, id string) (*models.JournalEntry, error) {
	if tx == nil || strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var item models.JournalEntry
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func applyJournalFilters(query *gorm.DB, params repository.ListJournalEntriesParams) *gorm.DB {
	if strings.TrimSpace(params.UserID) != "" {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("created_at < ?", *params.Until)
	}
	return query
}

func (s *Store) ListJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) ([]models.JournalEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyJournalFilters(s.db.WithContext(ctx).Model(&models.JournalEntry{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.JournalEntry
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyJournalFilters(s.db.WithContext(ctx).Model(&models.JournalEntry{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) SetJournalAnalysisIfAbsent(ctx context.Context, id string, analysis string, analysisType string, warning *string, analyzedAt time.Time) (bool, error) {
	if s == nil || s.db == nil || strings.TrimSpace(id) == "" {
		return false, nil
	}
	updates := map[string]any{
		"analysis":         analysis,
		"analysis_type":    analysisType,
		"analysis_warning": warning,
		"analyzed_at":      analyzedAt,
		"updated_at":       time.Now().UTC(),
	}
	res := s.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Where("id = ?", id).
		Where("analysis IS NULL").
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// --- Conversation history ---------------------------------------------------

func (s *Store) CountJournalMessagesTx(ctx context.Context, tx *gorm.DB, journalID string) (int64, error) {
	if tx == nil {
		return 0, nil
	}
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.JournalMessage{}).
		Where("journal_id = ?", journalID).
		Count(&total).Error
	return total, err
}

func (s *Store) InsertJournalMessagesTx(ctx context.Context, tx *gorm.DB, items []models.JournalMessage) error {
	if tx == nil || len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (s *Store) UpdateJournalQuotesTx(ctx context.Context, tx *gorm.DB, id string, quotes datatypes.JSON) error {
	if tx == nil || strings.TrimSpace(id) == "" {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{"quotes": quotes, "updated_at": time.Now().UTC()}).Error
}

func (s *Store) ListJournalMessages(ctx context.Context, journalID string) ([]models.JournalMessage, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.JournalMessage
	if err := s.db.WithContext(ctx).
		Where("journal_id = ?", journalID).
		Order("seq asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Profiles ---------------------------------------------------------------

func (s *Store) UpsertUserProfile(ctx context.Context, item *models.UserProfile) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.UID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username",
			"email",
			"phone",
			"avatar",
			"alert_prefs",
			"daily_loss_limit",
			"trading_experience",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetUserProfileByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if s == nil || s.db == nil || strings.TrimSpace(uid) == "" {
		return nil, nil
	}
	var item models.UserProfile
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- Settings + balance ledger ----------------------------------------------

func (s *Store) GetUserSettings(ctx context.Context, uid string) (*models.UserSettings, error) {
	if s == nil || s.db == nil || strings.TrimSpace(uid) == "" {
		return nil, nil
	}
	var item models.UserSettings
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetUserSettingsForUpdateTx(ctx context.Context, tx *gorm.DB, uid string) (*models.UserSettings, error) {
	if tx == nil || strings.TrimSpace(uid) == "" {
		return nil, nil
	}
	var item models.UserSettings
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uid = ?", uid).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveUserSettingsTx(ctx context.Context, tx *gorm.DB, item *models.UserSettings) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Save(item).Error
}

// UpdateUserPreferences is an upsert: a user who has never touched the ledger
// has no settings row yet, and their first preference write must create it.
// On conflict only the provided columns are assigned so the balance is never
// touched from here.
func (s *Store) UpdateUserPreferences(ctx context.Context, uid string, darkMode *bool, mouseAlerts *bool) error {
	if s == nil || s.db == nil || strings.TrimSpace(uid) == "" {
		return nil
	}
	item := models.UserSettings{UID: uid}
	assign := []string{"updated_at"}
	if darkMode != nil {
		item.DarkMode = *darkMode
		assign = append(assign, "dark_mode")
	}
	if mouseAlerts != nil {
		item.MousePsychologyAlerts = *mouseAlerts
		assign = append(assign, "mouse_psychology_alerts")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns(assign),
	}).Create(&item).Error
}

func (s *Store) InsertDepositRecordTx(ctx context.Context, tx *gorm.DB, item *models.DepositRecord) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertBlownAccountRecordTx(ctx context.Context, tx *gorm.DB, item *models.BlownAccountRecord) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListDepositRecords(ctx context.Context, uid string, limit, offset int) ([]models.DepositRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.DepositRecord
	if err := s.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("recorded_at desc").
		Limit(normalizeLimit(limit, 100)).
		Offset(normalizeOffset(offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListBlownAccountRecords(ctx context.Context, uid string) ([]models.BlownAccountRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.BlownAccountRecord
	if err := s.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("recorded_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListUserSettings(ctx context.Context) ([]models.UserSettings, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.UserSettings
	if err := s.db.WithContext(ctx).
		Order("uid asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertBalanceSnapshot(ctx context.Context, item *models.BalanceSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetLatestBalanceSnapshotBefore(ctx context.Context, uid string, before time.Time) (*models.BalanceSnapshot, error) {
	if s == nil || s.db == nil || strings.TrimSpace(uid) == "" {
		return nil, nil
	}
	var item models.BalanceSnapshot
	err := s.db.WithContext(ctx).
		Where("uid = ?", uid).
		Where("taken_at < ?", before).
		Order("taken_at desc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- Social -----------------------------------------------------------------

func (s *Store) InsertPost(ctx context.Context, item *models.Post) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if s == nil || s.db == nil || strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var item models.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.Post, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if params.AuthorID != nil && strings.TrimSpace(*params.AuthorID) != "" {
		query = query.Where("author_id = ?", strings.TrimSpace(*params.AuthorID))
	}
	var items []models.Post
	if err := query.
		Order("created_at desc").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPosts(ctx context.Context, params repository.ListPostsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if params.AuthorID != nil && strings.TrimSpace(*params.AuthorID) != "" {
		query = query.Where("author_id = ?", strings.TrimSpace(*params.AuthorID))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) DeletePostByAuthor(ctx context.Context, id string, authorID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("id = ?", id).
		Where("author_id = ?", authorID).
		Delete(&models.Post{})
	return res.RowsAffected, res.Error
}

func (s *Store) InsertComment(ctx context.Context, item *models.PostComment) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListCommentsByPostID(ctx context.Context, postID string) ([]models.PostComment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PostComment
	if err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteCommentByAuthor(ctx context.Context, id string, authorID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("id = ?", id).
		Where("author_id = ?", authorID).
		Delete(&models.PostComment{})
	return res.RowsAffected, res.Error
}

func (s *Store) InsertLike(ctx context.Context, item *models.PostLike) (bool, error) {
	if s == nil || s.db == nil || item == nil {
		return false, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(item)
	return res.RowsAffected > 0, res.Error
}

func (s *Store) DeleteLike(ctx context.Context, postID string, userID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Where("user_id = ?", userID).
		Delete(&models.PostLike{})
	return res.RowsAffected, res.Error
}

func (s *Store) CountLikes(ctx context.Context, postID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&total).Error
	return total, err
}

func (s *Store) HasLiked(ctx context.Context, postID string, userID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total > 0, err
}

// --- Newsletter -------------------------------------------------------------

func (s *Store) UpsertNewsletterSubscription(ctx context.Context, item *models.NewsletterSubscription) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Email) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"subscribed_at",
			"is_active",
		}),
	}).Create(item).Error
}

func (s *Store) SetNewsletterActive(ctx context.Context, email string, active bool) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.NewsletterSubscription{}).
		Where("email = ?", email).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}

func (s *Store) GetNewsletterByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	if s == nil || s.db == nil || strings.TrimSpace(email) == "" {
		return nil, nil
	}
	var item models.NewsletterSubscription
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- helpers ----------------------------------------------------------------

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, def string) *gorm.DB {
	col := strings.TrimSpace(strings.ToLower(orderBy))
	if col == "" {
		col = def
	}
	dir := "desc"
	if asc != nil && *asc {
		dir = "asc"
	}
	return query.Order(col + " " + dir)
}
