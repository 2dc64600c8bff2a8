package engine

import "log/slog"

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer on the default logger
func NewLoggingObserver() *LoggingObserver {
	return NewLoggingObserverWith(slog.Default())
}

// NewLoggingObserverWith logs to the given logger
func NewLoggingObserverWith(logger *slog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Debug("pass_lifecycle",
		"event", event.Type,
		"pass_id", event.PassID,
		"pass_seq", event.PassSeq,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
