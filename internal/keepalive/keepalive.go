// Package keepalive pings every registered session on a schedule so the
// backend does not expire the cookies while an MCP client sits idle.
package keepalive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/edubridge/edubridge/internal/session"
)

const pingTimeout = 20 * time.Second

// Service owns the background ping schedule.
type Service struct {
	sessions *session.Registry
	every    time.Duration
	cron     *robfigcron.Cron
}

// New builds a Service pinging at the given interval. A non-positive
// interval disables the schedule entirely.
func New(sessions *session.Registry, every time.Duration) *Service {
	return &Service{
		sessions: sessions,
		every:    every,
		cron:     robfigcron.New(),
	}
}

// Start begins the schedule. Safe to call with keep-alive disabled.
func (s *Service) Start() error {
	if s.every <= 0 {
		return nil
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.every), s.ping); err != nil {
		return fmt.Errorf("schedule keep-alive: %w", err)
	}
	s.cron.Start()
	slog.Info("keep-alive started", "every", s.every)
	return nil
}

// Stop halts the schedule and waits for a running ping to finish.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
}

// ping touches every registered session. One school failing is logged
// and does not stop the others; the session may recover on the next run.
func (s *Service) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	for _, entry := range s.sessions.All() {
		if err := entry.Session.Ping(ctx); err != nil {
			slog.Warn("keep-alive ping failed", "school", entry.School, "err", err)
			continue
		}
		slog.Debug("keep-alive ping ok", "school", entry.School)
	}
}
