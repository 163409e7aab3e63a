package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StartDirectorySync pulls the upstream employee directory once and then every
// interval until ctx is done. It does nothing without a directory.
func (s *Service) StartDirectorySync(ctx context.Context, interval time.Duration) {
	if s.directory == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			s.syncOnce(ctx)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *Service) syncOnce(ctx context.Context) {
	n, wait, err := s.SyncDirectory(ctx)
	if err != nil {
		s.logger.Error("directory sync error", zap.Error(err))
		return
	}

	if wait > 0 {
		s.logger.Warn("directory rate limited", zap.Duration("retryAfter", wait))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
		return
	}

	s.logger.Info("directory synced", zap.Int("employees", n))
}

// SyncDirectory fetches employees from the directory and stores them. When the
// directory is rate limiting, it returns the delay to wait before the next attempt.
func (s *Service) SyncDirectory(ctx context.Context) (int, time.Duration, error) {
	if s.directory == nil {
		return 0, 0, nil
	}

	employees, status, retryAfter, err := s.directory.FetchEmployees(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch employees: %w", err)
	}

	if status == http.StatusTooManyRequests {
		return 0, retryAfter, nil
	}

	if len(employees) == 0 {
		return 0, 0, nil
	}

	if err := s.repo.UpsertEmployees(ctx, employees); err != nil {
		return 0, 0, fmt.Errorf("store employees: %w", err)
	}

	return len(employees), 0, nil
}
