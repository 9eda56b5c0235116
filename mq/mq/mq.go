package mq

import "github.com/google/uuid"

// TopicProvider is implemented by any message routed by trip ID.
type TopicProvider interface {
	GetTopic() uuid.UUID
}

// ItineraryMessageQueueWrapper hands out the per-action queues. A nil return
// means the action has no queue wired (e.g. accommodation updates).
type ItineraryMessageQueueWrapper interface {
	GetTripPointMessageQueue(action Action) TripPointMessageQueue
	GetAccommodationMessageQueue(action Action) AccommodationMessageQueue
}

type TripPointMessageQueue interface {
	GetAction() Action
	Publish(msg TripPointMessage) error
	Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan TripPointMessage, error)
	DeSubscribe(id uuid.UUID) error
}

type AccommodationMessageQueue interface {
	GetAction() Action
	Publish(msg AccommodationMessage) error
	Subscribe(tripID uuid.UUID) (uuid.UUID, <-chan AccommodationMessage, error)
	DeSubscribe(id uuid.UUID) error
}
