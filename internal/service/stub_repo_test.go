package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"journalx/internal/models"
	"journalx/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but each test exercises only a slice of it.
type stubRepo struct {
	entries     map[string]*models.JournalEntry
	messages    map[string][]models.JournalMessage
	profiles    map[string]*models.UserProfile
	settings    map[string]*models.UserSettings
	deposits    []models.DepositRecord
	blown       []models.BlownAccountRecord
	snapshots   []models.BalanceSnapshot
	posts       map[string]*models.Post
	comments    map[string]*models.PostComment
	likes       map[string]map[string]bool
	newsletters map[string]*models.NewsletterSubscription
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		entries:     map[string]*models.JournalEntry{},
		messages:    map[string][]models.JournalMessage{},
		profiles:    map[string]*models.UserProfile{},
		settings:    map[string]*models.UserSettings{},
		posts:       map[string]*models.Post{},
		comments:    map[string]*models.PostComment{},
		likes:       map[string]map[string]bool{},
		newsletters: map[string]*models.NewsletterSubscription{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) InsertJournalEntryTx(ctx context.Context, tx *gorm.DB, item *models.JournalEntry) error {
	cp := *item
	s.entries[item.ID] = &cp
	return nil
}

func (s *stubRepo) GetJournalEntryByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *stubRepo) GetJournalEntryForUpdateTx(ctx context.Context, tx *gorm.DB, id string) (*models.JournalEntry, error) {
	return s.GetJournalEntryByID(ctx, id)
}

func (s *stubRepo) ListJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range s.entries {
		if e.UserID != params.UserID {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubRepo) CountJournalEntries(ctx context.Context, params repository.ListJournalEntriesParams) (int64, error) {
	items, _ := s.ListJournalEntries(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) SetJournalAnalysisIfAbsent(ctx context.Context, id string, analysis string, analysisType string, warning *string, analyzedAt time.Time) (bool, error) {
	e, ok := s.entries[id]
	if !ok {
		return false, nil
	}
	if e.Analysis != nil && *e.Analysis != "" {
		return false, nil
	}
	e.Analysis = &analysis
	e.AnalysisType = &analysisType
	e.AnalysisWarning = warning
	at := analyzedAt
	e.AnalyzedAt = &at
	return true, nil
}

func (s *stubRepo) CountJournalMessagesTx(ctx context.Context, tx *gorm.DB, journalID string) (int64, error) {
	return int64(len(s.messages[journalID])), nil
}

func (s *stubRepo) InsertJournalMessagesTx(ctx context.Context, tx *gorm.DB, items []models.JournalMessage) error {
	for _, m := range items {
		s.messages[m.JournalID] = append(s.messages[m.JournalID], m)
	}
	return nil
}

func (s *stubRepo) UpdateJournalQuotesTx(ctx context.Context, tx *gorm.DB, id string, quotes datatypes.JSON) error {
	if e, ok := s.entries[id]; ok {
		e.Quotes = quotes
	}
	return nil
}

func (s *stubRepo) ListJournalMessages(ctx context.Context, journalID string) ([]models.JournalMessage, error) {
	out := append([]models.JournalMessage(nil), s.messages[journalID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (s *stubRepo) UpsertUserProfile(ctx context.Context, item *models.UserProfile) error {
	cp := *item
	s.profiles[item.UID] = &cp
	return nil
}

func (s *stubRepo) GetUserProfileByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, ok := s.profiles[uid]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) GetUserSettings(ctx context.Context, uid string) (*models.UserSettings, error) {
	st, ok := s.settings[uid]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *stubRepo) GetUserSettingsForUpdateTx(ctx context.Context, tx *gorm.DB, uid string) (*models.UserSettings, error) {
	return s.GetUserSettings(ctx, uid)
}

func (s *stubRepo) SaveUserSettingsTx(ctx context.Context, tx *gorm.DB, item *models.UserSettings) error {
	cp := *item
	s.settings[item.UID] = &cp
	return nil
}

func (s *stubRepo) UpdateUserPreferences(ctx context.Context, uid string, darkMode *bool, mouseAlerts *bool) error {
	st, ok := s.settings[uid]
	if !ok {
		st = &models.UserSettings{UID: uid}
		s.settings[uid] = st
	}
	if darkMode != nil {
		st.DarkMode = *darkMode
	}
	if mouseAlerts != nil {
		st.MousePsychologyAlerts = *mouseAlerts
	}
	return nil
}

func (s *stubRepo) InsertDepositRecordTx(ctx context.Context, tx *gorm.DB, item *models.DepositRecord) error {
	item.ID = uint64(len(s.deposits) + 1)
	s.deposits = append(s.deposits, *item)
	return nil
}

func (s *stubRepo) InsertBlownAccountRecordTx(ctx context.Context, tx *gorm.DB, item *models.BlownAccountRecord) error {
	item.ID = uint64(len(s.blown) + 1)
	s.blown = append(s.blown, *item)
	return nil
}

func (s *stubRepo) ListDepositRecords(ctx context.Context, uid string, limit, offset int) ([]models.DepositRecord, error) {
	var out []models.DepositRecord
	for _, r := range s.deposits {
		if r.UID == uid {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRepo) ListBlownAccountRecords(ctx context.Context, uid string) ([]models.BlownAccountRecord, error) {
	var out []models.BlownAccountRecord
	for _, r := range s.blown {
		if r.UID == uid {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRepo) ListUserSettings(ctx context.Context) ([]models.UserSettings, error) {
	var out []models.UserSettings
	for _, st := range s.settings {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (s *stubRepo) InsertBalanceSnapshot(ctx context.Context, item *models.BalanceSnapshot) error {
	item.ID = uint64(len(s.snapshots) + 1)
	s.snapshots = append(s.snapshots, *item)
	return nil
}

func (s *stubRepo) GetLatestBalanceSnapshotBefore(ctx context.Context, uid string, before time.Time) (*models.BalanceSnapshot, error) {
	var best *models.BalanceSnapshot
	for i := range s.snapshots {
		snap := s.snapshots[i]
		if snap.UID != uid || !snap.TakenAt.Before(before) {
			continue
		}
		if best == nil || snap.TakenAt.After(best.TakenAt) {
			cp := snap
			best = &cp
		}
	}
	return best, nil
}

func (s *stubRepo) InsertPost(ctx context.Context, item *models.Post) error {
	cp := *item
	s.posts[item.ID] = &cp
	return nil
}

func (s *stubRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.Post, error) {
	var out []models.Post
	for _, p := range s.posts {
		if params.AuthorID != nil && *params.AuthorID != "" && p.AuthorID != *params.AuthorID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubRepo) CountPosts(ctx context.Context, params repository.ListPostsParams) (int64, error) {
	items, _ := s.ListPosts(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) DeletePostByAuthor(ctx context.Context, id string, authorID string) (int64, error) {
	p, ok := s.posts[id]
	if !ok || p.AuthorID != authorID {
		return 0, nil
	}
	delete(s.posts, id)
	return 1, nil
}

func (s *stubRepo) InsertComment(ctx context.Context, item *models.PostComment) error {
	cp := *item
	s.comments[item.ID] = &cp
	return nil
}

func (s *stubRepo) ListCommentsByPostID(ctx context.Context, postID string) ([]models.PostComment, error) {
	var out []models.PostComment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *stubRepo) DeleteCommentByAuthor(ctx context.Context, id string, authorID string) (int64, error) {
	c, ok := s.comments[id]
	if !ok || c.AuthorID != authorID {
		return 0, nil
	}
	delete(s.comments, id)
	return 1, nil
}

func (s *stubRepo) InsertLike(ctx context.Context, item *models.PostLike) (bool, error) {
	if s.likes[item.PostID] == nil {
		s.likes[item.PostID] = map[string]bool{}
	}
	if s.likes[item.PostID][item.UserID] {
		return false, nil
	}
	s.likes[item.PostID][item.UserID] = true
	return true, nil
}

func (s *stubRepo) DeleteLike(ctx context.Context, postID string, userID string) (int64, error) {
	if !s.likes[postID][userID] {
		return 0, nil
	}
	delete(s.likes[postID], userID)
	return 1, nil
}

func (s *stubRepo) CountLikes(ctx context.Context, postID string) (int64, error) {
	return int64(len(s.likes[postID])), nil
}

func (s *stubRepo) HasLiked(ctx context.Context, postID string, userID string) (bool, error) {
	return s.likes[postID][userID], nil
}

func (s *stubRepo) UpsertNewsletterSubscription(ctx context.Context, item *models.NewsletterSubscription) error {
	cp := *item
	s.newsletters[item.Email] = &cp
	return nil
}

func (s *stubRepo) SetNewsletterActive(ctx context.Context, email string, active bool) (int64, error) {
	sub, ok := s.newsletters[email]
	if !ok {
		return 0, nil
	}
	sub.IsActive = active
	return 1, nil
}

func (s *stubRepo) GetNewsletterByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	sub, ok := s.newsletters[email]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}
