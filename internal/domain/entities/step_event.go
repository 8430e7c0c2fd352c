package entities

// StepLevel is the severity of a step event.
type StepLevel string

const (
	LevelInfo    StepLevel = "info"
	LevelWarning StepLevel = "warning"
	LevelError   StepLevel = "error"
)

// Step names emitted during a release run.
const (
	StepFailure                 = "failure"
	StepNothingChanged          = "nothing_changed"
	StepWarning                 = "warning"
	StepCalculateVersionSuccess = "calculate_version_success"
	StepManifestSuccess         = "manifest_success"
	StepChangelogSuccess        = "changelog_success"
	StepCommitSuccess           = "commit_success"
	StepTagSuccess              = "tag_success"
	StepPushSuccess             = "push_success"
	StepRunTargetSuccess        = "run_target_success"
	StepPostTargetsSuccess      = "post_targets_success"
)

// StepEvent is a single progress notification of a release run.
type StepEvent struct {
	RunID       string
	Step        string
	Level       StepLevel
	Message     string
	ProjectName string
}

// Observer receives step events. It is the side channel through which a run
// reports progress and failure details; the run itself only returns RunResult.
type Observer interface {
	Notify(event StepEvent)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(event StepEvent)

func (f ObserverFunc) Notify(event StepEvent) { f(event) }

// Observers fans an event out to every observer in order.
type Observers []Observer

func (o Observers) Notify(event StepEvent) {
	for _, observer := range o {
		if observer != nil {
			observer.Notify(event)
		}
	}
}

// RunResult is the terminal artifact of a release run.
type RunResult struct {
	Success bool
}
