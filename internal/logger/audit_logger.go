// Package logger provides run audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records what each CLI run did.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRunStarted logs the start of a run.
func (al *AuditLogger) LogRunStarted(runID, command, method string, fixtures int) {
	al.WithFields(logrus.Fields{
		"run_id":   runID,
		"command":  command,
		"method":   method,
		"fixtures": fixtures,
	}).Info("Run started")
}

// LogRunCompleted logs the end of a run.
func (al *AuditLogger) LogRunCompleted(runID string, predicted, skipped int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"run_id":      runID,
		"predicted":   predicted,
		"skipped":     skipped,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	}).Info("Run completed")
}

// LogFixtureSkipped logs a fixture left out of a run.
func (al *AuditLogger) LogFixtureSkipped(runID, fixture, reason string) {
	al.WithFields(logrus.Fields{
		"run_id":  runID,
		"fixture": fixture,
		"reason":  reason,
	}).Warn("Fixture skipped")
}
