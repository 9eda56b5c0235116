package mq

import (
	"time"

	"github.com/google/uuid"
)

type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
	ActionCnt
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// TripPointMessage is the event payload emitted when a trip's itinerary
// changes. The topic is the owning trip.
type TripPointMessage struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	Name       string
	Date       time.Time
	VisitOrder int
	// ChangedFields lists the field paths that differ from the previous
	// revision. Populated on update events only.
	ChangedFields []string
}

func (m TripPointMessage) GetTopic() uuid.UUID {
	return m.TripID
}

// AccommodationMessage is the event payload emitted when a booking is added
// to a trip.
type AccommodationMessage struct {
	ID           uuid.UUID
	TripID       uuid.UUID
	POIID        uuid.UUID
	CheckInDate  time.Time
	CheckOutDate time.Time
}

func (m AccommodationMessage) GetTopic() uuid.UUID {
	return m.TripID
}

// Mode selects the message queue backend at startup.
type Mode string

const (
	ModeGoChan    Mode = "go_chan"
	ModeRabbitMQ  Mode = "rabbitmq"
	ModeGCPPubSub Mode = "gcp_pub_sub"
)
