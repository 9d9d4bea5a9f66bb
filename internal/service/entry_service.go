package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"journalx/internal/ai"
	"journalx/internal/models"
	"journalx/internal/repository"
)

// TextGenerator is the generative text model used for commentary and
// follow-up conversation.
type TextGenerator interface {
	Generate(ctx context.Context, history []ai.Turn, input string) (string, error)
}

type EntryService struct {
	Repo   repository.Repository
	Text   TextGenerator
	Logger *zap.Logger
}

type CreateEntryInput struct {
	Title       string
	Description string
	Emotion     string
	Activity    string
	ProfitLoss  decimal.Decimal
	ImageURL    string
	ImagePath   string
}

type CreateEntryResult struct {
	ID       string
	Response string
	History  []models.JournalMessage
}

// CreateEntry asks the text model for commentary on a fresh entry and then
// persists the entry together with its two-turn history in one transaction.
// Nothing is written when the provider call fails.
func (s *EntryService) CreateEntry(ctx context.Context, uid string, in CreateEntryInput) (*CreateEntryResult, error) {
	prompt := ai.BuildCommentaryPrompt(in.Title, in.Description, in.Emotion, in.Activity)

	reply, err := s.Text.Generate(ctx, nil, prompt)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	now := time.Now().UTC()
	entry := &models.JournalEntry{
		ID:          uuid.NewString(),
		UserID:      uid,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Emotion:     strings.TrimSpace(in.Emotion),
		Activity:    strings.TrimSpace(in.Activity),
		ProfitLoss:  in.ProfitLoss,
		Quotes:      mustQuotesJSON([]string{reply}),
		CreatedAt:   now,
	}
	if v := strings.TrimSpace(in.ImageURL); v != "" {
		entry.ImageURL = &v
	}
	if v := strings.TrimSpace(in.ImagePath); v != "" {
		entry.ImagePath = &v
	}

	history := []models.JournalMessage{
		{JournalID: entry.ID, Seq: 0, Role: models.RoleUser, Text: prompt, CreatedAt: now},
		{JournalID: entry.ID, Seq: 1, Role: models.RoleModel, Text: reply, CreatedAt: now},
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertJournalEntryTx(ctx, tx, entry); err != nil {
			return err
		}
		return s.Repo.InsertJournalMessagesTx(ctx, tx, history)
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("journal entry created",
			zap.String("journal_id", entry.ID),
			zap.String("uid", uid),
		)
	}

	return &CreateEntryResult{ID: entry.ID, Response: reply, History: history}, nil
}

type FollowUpResult struct {
	Response string
	History  []models.JournalMessage
}

// FollowUp replays the entry's stored history to the text model and appends
// the new user/model pair atomically. The existence check runs before the
// provider call so a missing entry never costs a model invocation.
func (s *EntryService) FollowUp(ctx context.Context, uid, journalID, input string) (*FollowUpResult, error) {
	entry, err := s.Repo.GetJournalEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != uid {
		return nil, ErrNotFound
	}

	prior, err := s.Repo.ListJournalMessages(ctx, journalID)
	if err != nil {
		return nil, err
	}
	turns := make([]ai.Turn, 0, len(prior))
	for _, m := range prior {
		turns = append(turns, ai.Turn{Role: m.Role, Text: m.Text})
	}

	reply, err := s.Text.Generate(ctx, turns, input)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	now := time.Now().UTC()
	pair := []models.JournalMessage{
		{JournalID: journalID, Role: models.RoleUser, Text: input, CreatedAt: now},
		{JournalID: journalID, Role: models.RoleModel, Text: reply, CreatedAt: now},
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		locked, err := s.Repo.GetJournalEntryForUpdateTx(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrNotFound
		}
		base, err := s.Repo.CountJournalMessagesTx(ctx, tx, journalID)
		if err != nil {
			return err
		}
		pair[0].Seq = int(base)
		pair[1].Seq = int(base) + 1
		if err := s.Repo.InsertJournalMessagesTx(ctx, tx, pair); err != nil {
			return err
		}
		quotes := appendQuote(locked.Quotes, reply)
		return s.Repo.UpdateJournalQuotesTx(ctx, tx, journalID, quotes)
	})
	if err != nil {
		return nil, err
	}

	return &FollowUpResult{
		Response: reply,
		History:  append(prior, pair...),
	}, nil
}

type EntryWithHistory struct {
	Entry   *models.JournalEntry
	History []models.JournalMessage
}

func (s *EntryService) Get(ctx context.Context, uid, journalID string) (*EntryWithHistory, error) {
	entry, err := s.Repo.GetJournalEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != uid {
		return nil, ErrNotFound
	}
	history, err := s.Repo.ListJournalMessages(ctx, journalID)
	if err != nil {
		return nil, err
	}
	return &EntryWithHistory{Entry: entry, History: history}, nil
}

func (s *EntryService) List(ctx context.Context, uid string, params repository.ListJournalEntriesParams) ([]models.JournalEntry, int64, error) {
	params.UserID = uid
	items, err := s.Repo.ListJournalEntries(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountJournalEntries(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func mustQuotesJSON(quotes []string) datatypes.JSON {
	b, err := json.Marshal(quotes)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

func appendQuote(raw datatypes.JSON, quote string) datatypes.JSON {
	var quotes []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &quotes)
	}
	quotes = append(quotes, quote)
	return mustQuotesJSON(quotes)
}
