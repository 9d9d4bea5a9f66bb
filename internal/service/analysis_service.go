package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"journalx/internal/ai"
	"journalx/internal/models"
	"journalx/internal/repository"
)

// VisionAnalyzer is the vision-capable chat model used for screenshot
// analysis.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (string, error)
}

// StorageResolver resolves a bare storage path to a downloadable URL.
type StorageResolver interface {
	ResolveDownloadURL(ctx context.Context, path string) (string, error)
}

type AnalysisService struct {
	Repo    repository.Repository
	Vision  VisionAnalyzer
	Storage StorageResolver
	Logger  *zap.Logger
}

// EnsureAnalysis runs the lazy per-entry analysis state machine and returns
// the entry with its terminal analysis state. The vision model is invoked at
// most once per entry: an already-analyzed entry (ai or fallback) short-
// circuits, and the persist step is guarded so a concurrent analyzer's result
// wins cleanly.
func (s *AnalysisService) EnsureAnalysis(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	if entry == nil {
		return nil, ErrNotFound
	}
	if entry.HasAnalysis() || !entry.HasImage() {
		return entry, nil
	}

	imageURL, err := s.resolveImageURL(ctx, entry)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	analysis, aerr := s.Vision.Analyze(ctx, imageURL)

	var applied bool
	if aerr != nil {
		kind := ai.ClassifyProviderError(aerr)
		warning := aerr.Error()
		if s.Logger != nil {
			s.Logger.Warn("vision analysis failed, storing fallback",
				zap.String("journal_id", entry.ID),
				zap.String("kind", string(kind)),
				zap.Error(aerr),
			)
		}
		applied, err = s.Repo.SetJournalAnalysisIfAbsent(ctx, entry.ID,
			ai.FallbackAnalysis(kind), models.AnalysisTypeFallback, &warning, now)
	} else {
		applied, err = s.Repo.SetJournalAnalysisIfAbsent(ctx, entry.ID,
			analysis, models.AnalysisTypeAI, nil, now)
	}
	if err != nil {
		return nil, err
	}

	if !applied {
		// A concurrent fetch analyzed the entry first; its result stands.
		fresh, err := s.Repo.GetJournalEntryByID(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		if fresh != nil {
			return fresh, nil
		}
		return entry, nil
	}

	out := *entry
	if aerr != nil {
		kind := ai.ClassifyProviderError(aerr)
		text := ai.FallbackAnalysis(kind)
		warning := aerr.Error()
		typ := models.AnalysisTypeFallback
		out.Analysis = &text
		out.AnalysisType = &typ
		out.AnalysisWarning = &warning
	} else {
		typ := models.AnalysisTypeAI
		out.Analysis = &analysis
		out.AnalysisType = &typ
	}
	out.AnalyzedAt = &now
	return &out, nil
}

func (s *AnalysisService) resolveImageURL(ctx context.Context, entry *models.JournalEntry) (string, error) {
	if entry.ImageURL != nil && *entry.ImageURL != "" {
		return *entry.ImageURL, nil
	}
	return s.Storage.ResolveDownloadURL(ctx, *entry.ImagePath)
}
