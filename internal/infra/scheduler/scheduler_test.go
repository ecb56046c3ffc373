package scheduler

import (
	"io"
	"testing"

	"homework_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSummaryText(t *testing.T) {
	text := summaryText(app.Stats{
		Cycles:        144,
		Notifications: 3,
		Escalations:   2,
		SendFailures:  1,
	})

	assert.Contains(t, text, "циклов опроса — 144")
	assert.Contains(t, text, "уведомлений — 3")
	assert.Contains(t, text, "эскалаций — 2")
	assert.Contains(t, text, "сбоев отправки — 1")
}

func TestStart_EmptySpecDisablesJob(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s := NewSummaryScheduler(nil, nil, log, "")
	assert.NotPanics(t, func() {
		s.Start()
		s.Stop()
	})
}
