package scheduler

import (
	"fmt"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatsSource exposes the poller counters the summary reports on.
type StatsSource interface {
	Stats() app.Stats
}

// SummaryScheduler sends a short operator summary of poller activity on a
// cron schedule. Purely informational: it never touches the poll loop.
type SummaryScheduler struct {
	cronEngine *cron.Cron
	stats      StatsSource
	notifier   *app.Notifier
	logger     *logrus.Logger
	cronSpec   string
}

func NewSummaryScheduler(
	stats StatsSource,
	notifier *app.Notifier,
	logger *logrus.Logger,
	cronSpec string, // e.g. "0 9 * * *"; empty disables the job
) *SummaryScheduler {
	return &SummaryScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		stats:      stats,
		notifier:   notifier,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *SummaryScheduler) Start() {
	if s.cronSpec == "" {
		s.logger.Info("Daily summary disabled by configuration.")
		return
	}

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily summary.")
		if err := s.notifier.Notify(summaryText(s.stats.Stats())); err != nil {
			s.logger.Errorf("Could not deliver daily summary: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add daily summary cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Daily summary scheduled: %q", s.cronSpec)
}

func (s *SummaryScheduler) Stop() {
	ctx := s.cronEngine.Stop() // Waits for a running job to finish.
	<-ctx.Done()
	s.logger.Info("Summary scheduler stopped.")
}

func summaryText(st app.Stats) string {
	return fmt.Sprintf(
		"Сводка с момента запуска: циклов опроса — %d, уведомлений — %d, эскалаций — %d, сбоев отправки — %d.",
		st.Cycles, st.Notifications, st.Escalations, st.SendFailures,
	)
}
