package scheduler

import (
	"context"
	"log"
	"time"

	"disiplinku_backend/internals/features/users/auth/repository"
)

const DefaultCleanupInterval = 24 * time.Hour

// RunBlacklistCleanup sekali jalan; dipakai scheduler & CLI purge-tokens.
func RunBlacklistCleanup(ctx context.Context, repo *repository.TokenBlacklistRepository, now time.Time) int64 {
	n, err := repo.PurgeExpired(ctx, now)
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	} else {
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
	return n
}

// StartBlacklistCleanupScheduler berhenti saat ctx dibatalkan.
func StartBlacklistCleanupScheduler(ctx context.Context, repo *repository.TokenBlacklistRepository, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	go func() {
		log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
		RunBlacklistCleanup(ctx, repo, time.Now())

		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				RunBlacklistCleanup(ctx, repo, now)
			}
		}
	}()
}
