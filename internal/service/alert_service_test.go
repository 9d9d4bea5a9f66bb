package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/datatypes"

	"journalx/internal/models"
	"journalx/internal/notification"
)

func seedAlertUser(repo *stubRepo, uid, limit, balance, webhookURL string) {
	prefs, _ := json.Marshal(models.AlertPreferences{
		DailyLossAlerts: true,
		WebhookURL:      webhookURL,
	})
	repo.profiles[uid] = &models.UserProfile{
		UID:            uid,
		DailyLossLimit: dec(limit),
		AlertPrefs:     datatypes.JSON(prefs),
	}
	repo.settings[uid] = &models.UserSettings{UID: uid, AccountBalance: dec(balance)}
}

func TestSnapshotBalances_CoversAllUsers(t *testing.T) {
	repo := newStubRepo()
	repo.settings["u1"] = &models.UserSettings{UID: "u1", AccountBalance: dec("100")}
	repo.settings["u2"] = &models.UserSettings{UID: "u2", AccountBalance: dec("200")}
	svc := &AlertService{Repo: repo}

	n, err := svc.SnapshotBalances(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if n != 2 || len(repo.snapshots) != 2 {
		t.Fatalf("snapshots=%d want 2", len(repo.snapshots))
	}
}

func TestCheckDailyLoss_NotifiesOnLimitBreach(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		var payload notification.WebhookPayload
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.Event != "daily_loss_limit" {
			t.Errorf("event=%q", payload.Event)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := newStubRepo()
	seedAlertUser(repo, "u1", "50", "40", srv.URL)
	repo.snapshots = append(repo.snapshots, models.BalanceSnapshot{
		UID:     "u1",
		Balance: dec("100"),
		TakenAt: time.Now().UTC().Add(-24 * time.Hour),
	})

	svc := &AlertService{
		Repo:    repo,
		Webhook: notification.WebhookSender{HTTP: srv.Client()},
	}
	if err := svc.CheckDailyLoss(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("webhook hits=%d want 1", hits)
	}
}

func TestCheckDailyLoss_SkipsBelowLimit(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	repo := newStubRepo()
	seedAlertUser(repo, "u1", "50", "80", srv.URL)
	repo.snapshots = append(repo.snapshots, models.BalanceSnapshot{
		UID:     "u1",
		Balance: dec("100"),
		TakenAt: time.Now().UTC().Add(-24 * time.Hour),
	})

	svc := &AlertService{
		Repo:    repo,
		Webhook: notification.WebhookSender{HTTP: srv.Client()},
	}
	if err := svc.CheckDailyLoss(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("alert fired below limit")
	}
}

func TestRun_SnapshotsEvenWithAlertsOff(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	repo := newStubRepo()
	seedAlertUser(repo, "u1", "50", "40", srv.URL)
	repo.snapshots = append(repo.snapshots, models.BalanceSnapshot{
		UID:     "u1",
		Balance: dec("100"),
		TakenAt: time.Now().UTC().Add(-24 * time.Hour),
	})

	svc := &AlertService{
		Repo:    repo,
		Webhook: notification.WebhookSender{HTTP: srv.Client()},
	}
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("loss alert fired with alerts disabled")
	}
	if len(repo.snapshots) != 2 {
		t.Fatalf("snapshots=%d want 2 (baseline + new)", len(repo.snapshots))
	}
}

func TestRun_AlertsOnChecksThenSnapshots(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	repo := newStubRepo()
	seedAlertUser(repo, "u1", "50", "40", srv.URL)
	repo.snapshots = append(repo.snapshots, models.BalanceSnapshot{
		UID:     "u1",
		Balance: dec("100"),
		TakenAt: time.Now().UTC().Add(-24 * time.Hour),
	})

	svc := &AlertService{
		Repo:          repo,
		AlertsEnabled: true,
		Webhook:       notification.WebhookSender{HTTP: srv.Client()},
	}
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("webhook hits=%d want 1", hits)
	}
	if len(repo.snapshots) != 2 {
		t.Fatalf("snapshots=%d want 2", len(repo.snapshots))
	}
}

func TestCheckDailyLoss_SkipsWithoutBaseline(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	repo := newStubRepo()
	seedAlertUser(repo, "u1", "50", "0", srv.URL)

	svc := &AlertService{
		Repo:    repo,
		Webhook: notification.WebhookSender{HTTP: srv.Client()},
	}
	if err := svc.CheckDailyLoss(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("alert fired without a baseline snapshot")
	}
}
