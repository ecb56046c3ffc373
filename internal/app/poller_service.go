package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Stats is a snapshot of poller counters since process start. Read by the
// daily summary job from its own goroutine, hence the mutex in PollerService.
type Stats struct {
	Cycles        int64
	Notifications int64
	Escalations   int64
	SendFailures  int64
}

// PollerService is the polling state machine. It owns the query cursor and
// the last-sent-message cache; both are touched only from the single Run loop.
type PollerService struct {
	provider homework.StatusProvider
	notifier *Notifier
	logger   *logrus.Logger
	interval time.Duration

	cursor      int64
	lastMessage string

	mu    sync.Mutex
	stats Stats
}

func NewPollerService(
	provider homework.StatusProvider,
	notifier *Notifier,
	logger *logrus.Logger,
	interval time.Duration,
	startFrom time.Time,
) *PollerService {
	return &PollerService{
		provider: provider,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		cursor:   startFrom.Unix(),
	}
}

// Run executes poll cycles until ctx is cancelled. The wait between cycles is
// unconditional: a failed cycle waits out the same interval as a successful
// one, so there is no fast-retry path. Cancellation is checked between
// cycles, never mid-cycle.
func (s *PollerService) Run(ctx context.Context) {
	s.logger.Infof("Poller started. Interval: %s, initial cursor: %d", s.interval, s.cursor)
	for {
		s.RunCycle(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("Poller stopped: context cancelled.")
			return
		case <-time.After(s.interval):
		}
	}
}

// RunCycle performs one fetch-validate-interpret-notify pass. Every error is
// handled here; nothing propagates out of a cycle.
func (s *PollerService) RunCycle(ctx context.Context) {
	s.count(func(st *Stats) { st.Cycles++ })

	envelope, err := s.provider.HomeworkStatuses(ctx, s.cursor)
	if err != nil {
		// Transport failure or a broken envelope: the cursor stays put so the
		// same query window is retried on the next scheduled cycle.
		s.escalate(err)
		return
	}

	if len(envelope.Homeworks) == 0 {
		s.logger.Debug("No homework updates in this window.")
	} else {
		// The API returns the most recent entry first and carries no history
		// to diff, so only the first entry is interpreted.
		s.handleEntry(envelope.Homeworks[0])
	}

	// The envelope was valid, so the server's current_date is trustworthy
	// even when the record inside could not be interpreted. Guarded to keep
	// the cursor monotonic.
	if envelope.CurrentDate > s.cursor {
		s.logger.Debugf("Cursor advanced from %d to %d", s.cursor, envelope.CurrentDate)
		s.cursor = envelope.CurrentDate
	}
}

func (s *PollerService) handleEntry(entry any) {
	message, err := homework.ParseStatus(entry)
	if err != nil {
		s.escalate(err)
		return
	}

	if message == s.lastMessage {
		s.logger.Debug("Status unchanged since last notification, skipping send.")
		return
	}

	if err := s.notifier.Notify(message); err != nil {
		// The dedup cache is deliberately not updated: the same text gets
		// another chance on the next cycle.
		s.count(func(st *Stats) { st.SendFailures++ })
		s.logger.Errorf("Could not deliver status notification: %v", err)
		return
	}

	s.lastMessage = message
	s.count(func(st *Stats) { st.Notifications++ })
	s.logger.Infof("Status notification sent: %s", message)
}

// escalate converts a classified cycle error into a log entry and a
// best-effort operator alert. An alert delivery failure is swallowed.
func (s *PollerService) escalate(err error) {
	s.count(func(st *Stats) { st.Escalations++ })
	s.logger.WithField("error_kind", classify(err)).Errorf("Poll cycle failed: %v", err)

	alert := fmt.Sprintf("Сбой в работе программы: %v", err)
	if sendErr := s.notifier.Notify(alert); sendErr != nil {
		s.count(func(st *Stats) { st.SendFailures++ })
		s.logger.Errorf("Could not deliver operator alert: %v", sendErr)
	}
}

// Cursor returns the lower bound of the next query window.
func (s *PollerService) Cursor() int64 {
	return s.cursor
}

// Stats returns a snapshot of the poller counters.
func (s *PollerService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *PollerService) count(update func(*Stats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.stats)
}

func classify(err error) string {
	switch {
	case errors.Is(err, homework.ErrTransport):
		return "transport"
	case errors.Is(err, homework.ErrSchema):
		return "schema"
	case errors.Is(err, homework.ErrMissingField):
		return "missing_field"
	case errors.Is(err, homework.ErrUnknownStatus):
		return "unknown_status"
	case errors.Is(err, ErrSend):
		return "send"
	default:
		return "internal"
	}
}
