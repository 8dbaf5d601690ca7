package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a typed event. Events are immutable once created.
type Event[T any] struct {
	Type     Topic
	Payload  T
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	ID        uuid.UUID
	Timestamp time.Time
	// Source identifies the component that published the event.
	Source string
	// SessionID ties events to one editor.
	SessionID uuid.UUID
}

// New creates an event with a fresh id.
func New[T any](t Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.New(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// WithSession returns a copy of the event tagged with an editor session.
func (e Event[T]) WithSession(id uuid.UUID) Event[T] {
	e.Metadata.SessionID = id
	return e
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() Topic { return e.Type }

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata { return e.Metadata }

// TopicProvider is implemented by every Event.
type TopicProvider interface {
	EventTopic() Topic
}

// DesignChanged is the payload of TopicDesignChanged.
type DesignChanged struct {
	// Kind is the operation kind that produced the change.
	Kind string
	// Outcome is "push" or "replace".
	Outcome     string
	StrandCount int
	HelixCount  int
	UndoCount   int
}

// EditRejected is the payload of TopicEditRejected.
type EditRejected struct {
	Kind  string
	Class string
	Err   error
}

// SessionChanged is the payload of TopicSessionChanged. From and To are
// state names.
type SessionChanged struct {
	From string
	To   string
}

// HistoryMoved is the payload of TopicHistoryUndone and TopicHistoryRedone.
type HistoryMoved struct {
	Label     string
	UndoCount int
	RedoCount int
}

// ConfigReloaded is the payload of TopicConfigReloaded.
type ConfigReloaded struct {
	Path string
}

// BackupWritten is the payload of TopicBackupWritten.
type BackupWritten struct {
	Key  string
	Size int
}
