package worker

import (
	"context"
	"time"

	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/session"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

const (
	TypeWalletRefresh    = "wallet:refresh"
	TypeAnnouncementPoll = "announcement:poll"
)

// Refresher keeps per-session caches warm: wallet balance every refresh tick
// and the unread announcement count every poll tick, for every active
// session. Sessions whose TTL has lapsed are pruned from the active set as
// they are encountered.
type Refresher struct {
	Log           log.Log
	Sessions      *session.Store
	Wallet        *usecase.WalletUseCase
	Notifications *usecase.NotificationUseCase
}

func NewRefresher(
	logger log.Log,
	sessions *session.Store,
	wallet *usecase.WalletUseCase,
	notifications *usecase.NotificationUseCase,
) *Refresher {
	return &Refresher{
		Log:           logger,
		Sessions:      sessions,
		Wallet:        wallet,
		Notifications: notifications,
	}
}

func (r *Refresher) HandleWalletRefresh(ctx context.Context, t *asynq.Task) error {
	users, err := r.Sessions.Active(ctx)
	if err != nil {
		r.Log.Error("worker", err.Error(), "HandleWalletRefresh", "")
		return err
	}
	for _, userID := range users {
		if _, err := r.Sessions.Get(ctx, userID); err != nil {
			if pruneErr := r.Sessions.Prune(ctx, userID); pruneErr != nil {
				r.Log.Error("worker", pruneErr.Error(), "HandleWalletRefresh-prune", userID)
			}
			continue
		}
		if err := r.Wallet.RefreshBalance(ctx, userID); err != nil {
			r.Log.Error("worker", err.Error(), "HandleWalletRefresh", userID)
		}
	}
	return nil
}

func (r *Refresher) HandleAnnouncementPoll(ctx context.Context, t *asynq.Task) error {
	users, err := r.Sessions.Active(ctx)
	if err != nil {
		r.Log.Error("worker", err.Error(), "HandleAnnouncementPoll", "")
		return err
	}
	for _, userID := range users {
		sess, err := r.Sessions.Get(ctx, userID)
		if err != nil {
			if pruneErr := r.Sessions.Prune(ctx, userID); pruneErr != nil {
				r.Log.Error("worker", pruneErr.Error(), "HandleAnnouncementPoll-prune", userID)
			}
			continue
		}
		if err := r.Notifications.BackgroundPoll(ctx, userID, sess.Role); err != nil {
			r.Log.Error("worker", err.Error(), "HandleAnnouncementPoll", userID)
		}
	}
	return nil
}

// Schedule enqueues the periodic refresh tasks until ctx is cancelled. The
// intervals mirror the dashboard's timers: balance every 60s, unread count
// every 30s.
func Schedule(ctx context.Context, client *asynq.Client, v *viper.Viper, logger log.Log) {
	balanceEvery := v.GetDuration("wallet.refresh_interval")
	if balanceEvery == 0 {
		balanceEvery = 60 * time.Second
	}
	pollEvery := v.GetDuration("announcement.poll_interval")
	if pollEvery == 0 {
		pollEvery = 30 * time.Second
	}

	go enqueueEvery(ctx, client, TypeWalletRefresh, balanceEvery, logger)
	go enqueueEvery(ctx, client, TypeAnnouncementPoll, pollEvery, logger)
}

func enqueueEvery(ctx context.Context, client *asynq.Client, taskType string, interval time.Duration, logger log.Log) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := client.EnqueueContext(ctx, asynq.NewTask(taskType, nil)); err != nil {
				logger.Error("worker", err.Error(), "enqueueEvery", taskType)
			}
		case <-ctx.Done():
			return
		}
	}
}
