package event

import "errors"

// Errors returned by the bus.
var (
	ErrInvalidTopic         = errors.New("event: invalid topic")
	ErrInvalidEvent         = errors.New("event: value has no topic")
	ErrNilHandler           = errors.New("event: nil handler")
	ErrSubscriptionNotFound = errors.New("event: subscription not found")
)
