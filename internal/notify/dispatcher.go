package notify

import "github.com/CATyPH67/shop-api/internal/platform/logger"

// Dispatcher schedules out-of-band notifications. Submit must not block the
// caller and must not fail synchronously in the common path; delivery
// failures stay inside the dispatcher and are logged, never escalated.
type Dispatcher interface {
	Submit(recipient, subject, body string)
}

type logDispatcher struct {
	log *logger.Logger
}

// NewLogDispatcher returns a dispatcher that only records submissions.
// Used when no mail transport is configured.
func NewLogDispatcher(log *logger.Logger) Dispatcher {
	return &logDispatcher{log: log.With("service", "LogDispatcher")}
}

func (d *logDispatcher) Submit(recipient, subject, body string) {
	d.log.Info("notification submitted", "recipient", recipient, "subject", subject)
}
