package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"journalx/internal/models"
	"journalx/internal/notification"
	"journalx/internal/repository"
)

// AlertService takes the daily balance snapshot and notifies users whose
// drop since the previous snapshot meets their daily loss limit. Alert
// failures are logged and never abort the sweep.
type AlertService struct {
	Repo   repository.Repository
	Logger *zap.Logger

	// AlertsEnabled gates the loss check; snapshots are taken regardless so
	// a baseline exists the day alerts get switched on.
	AlertsEnabled bool

	Telegram      notification.TelegramSender
	TelegramToken string
	Webhook       notification.WebhookSender
}

// Run performs one sweep: loss check against the previous snapshot first,
// then the new snapshot so tomorrow's sweep has today's baseline.
func (s *AlertService) Run(ctx context.Context) error {
	if s.AlertsEnabled {
		if err := s.CheckDailyLoss(ctx); err != nil {
			return err
		}
	}
	_, err := s.SnapshotBalances(ctx)
	return err
}

func (s *AlertService) SnapshotBalances(ctx context.Context) (int, error) {
	settings, err := s.Repo.ListUserSettings(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	count := 0
	for _, st := range settings {
		err := s.Repo.InsertBalanceSnapshot(ctx, &models.BalanceSnapshot{
			UID:     st.UID,
			Balance: st.AccountBalance,
			TakenAt: now,
		})
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("balance snapshot failed", zap.String("uid", st.UID), zap.Error(err))
			}
			continue
		}
		count++
	}
	return count, nil
}

func (s *AlertService) CheckDailyLoss(ctx context.Context) error {
	settings, err := s.Repo.ListUserSettings(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, st := range settings {
		profile, err := s.Repo.GetUserProfileByUID(ctx, st.UID)
		if err != nil || profile == nil {
			continue
		}
		if profile.DailyLossLimit.Sign() <= 0 {
			continue
		}
		var prefs models.AlertPreferences
		if len(profile.AlertPrefs) > 0 {
			_ = json.Unmarshal(profile.AlertPrefs, &prefs)
		}
		if !prefs.DailyLossAlerts {
			continue
		}
		baseline, err := s.Repo.GetLatestBalanceSnapshotBefore(ctx, st.UID, now)
		if err != nil || baseline == nil {
			continue
		}
		drop := baseline.Balance.Sub(st.AccountBalance)
		if drop.LessThan(profile.DailyLossLimit) {
			continue
		}
		s.notify(ctx, st.UID, prefs, fmt.Sprintf(
			"Daily loss limit reached: balance dropped %s since %s (limit %s).",
			drop.StringFixed(2),
			baseline.TakenAt.Format("2006-01-02"),
			profile.DailyLossLimit.StringFixed(2),
		))
	}
	return nil
}

func (s *AlertService) notify(ctx context.Context, uid string, prefs models.AlertPreferences, message string) {
	if prefs.TelegramChatID != "" && s.TelegramToken != "" {
		if err := s.Telegram.Send(ctx, s.TelegramToken, prefs.TelegramChatID, message); err != nil && s.Logger != nil {
			s.Logger.Warn("telegram alert failed", zap.String("uid", uid), zap.Error(err))
		}
	}
	if prefs.WebhookURL != "" {
		payload := notification.WebhookPayload{
			App:     "journalx",
			Event:   "daily_loss_limit",
			Message: message,
		}
		if err := s.Webhook.Send(ctx, prefs.WebhookURL, payload); err != nil && s.Logger != nil {
			s.Logger.Warn("webhook alert failed", zap.String("uid", uid), zap.Error(err))
		}
	}
	if s.Logger != nil {
		s.Logger.Info("daily loss alert sent", zap.String("uid", uid))
	}
}
