package domain

// ProjectLoadProgressEvent is the event name the backend publishes while scanning.
const ProjectLoadProgressEvent = "project-load-progress"

// ProgressEvent reports how many images a running scan has found so far.
type ProgressEvent struct {
	Count int `json:"count"`
}

// Emitter publishes named events. The backend only depends on this half of the bus.
type Emitter interface {
	Emit(name string, payload any)
}
