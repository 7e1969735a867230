// Package metrics defines the render observability hooks used by the
// generator and the preview server.
package metrics

import "time"

// Kind labels which sort of page was rendered.
type Kind string

const (
	KindProject   Kind = "project"
	KindComponent Kind = "component"
)

// Result labels the outcome of a page render.
type Result string

const (
	ResultSuccess  Result = "success"
	ResultError    Result = "error"
	ResultNotFound Result = "not_found"
)

// Recorder receives render and build observations. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveRender(kind Kind, d time.Duration)
	IncRender(kind Kind, result Result)
	ObserveBuild(d time.Duration, success bool)
}

// NoopRecorder discards everything. It is the default when metrics are not
// configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(Kind, time.Duration) {}
func (NoopRecorder) IncRender(Kind, Result)            {}
func (NoopRecorder) ObserveBuild(time.Duration, bool)  {}
