//go:build integration || unit || test

package entitydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// RecordingObserver implements entities.Observer by keeping every event.
type RecordingObserver struct {
	mu     sync.Mutex
	Events []entities.StepEvent
}

var _ entities.Observer = (*RecordingObserver)(nil)

func (o *RecordingObserver) Notify(event entities.StepEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
}

// Steps returns the step names in emission order.
func (o *RecordingObserver) Steps() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	steps := make([]string, 0, len(o.Events))
	for _, event := range o.Events {
		steps = append(steps, event.Step)
	}
	return steps
}

// Find returns the first event with the given step name.
func (o *RecordingObserver) Find(step string) (entities.StepEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, event := range o.Events {
		if event.Step == step {
			return event, true
		}
	}
	return entities.StepEvent{}, false
}
