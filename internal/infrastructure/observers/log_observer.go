package observers

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// LogObserver writes step events to the logger.
type LogObserver struct{}

// NewLogObserver creates a new LogObserver.
func NewLogObserver() *LogObserver {
	return &LogObserver{}
}

// Notify logs the event at the level matching its severity.
func (it *LogObserver) Notify(event entities.StepEvent) {
	entry := logger.WithFields(logger.Fields{
		"step":    event.Step,
		"project": event.ProjectName,
		"run":     event.RunID,
	})

	switch event.Level {
	case entities.LevelError:
		entry.Error(event.Message)
	case entities.LevelWarning:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}
}
