package web

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin browser clients are expected; auth is upstream.
		return true
	},
}

// feedEvent is one itinerary change pushed over the websocket.
type feedEvent struct {
	Entity        string    `json:"entity"` // "tripPoint" or "accommodation"
	Action        string    `json:"action"`
	ID            uuid.UUID `json:"id"`
	TripID        uuid.UUID `json:"tripId"`
	Name          string    `json:"name,omitempty"`
	Date          string    `json:"date,omitempty"`
	VisitOrder    int       `json:"visitOrder,omitempty"`
	ChangedFields []string  `json:"changedFields,omitempty"`
	CheckInDate   string    `json:"checkInDate,omitempty"`
	CheckOutDate  string    `json:"checkOutDate,omitempty"`
}

func pointFeedTransform(action mq.Action) func(msg mq.TripPointMessage) (feedEvent, bool, error) {
	return func(msg mq.TripPointMessage) (feedEvent, bool, error) {
		return feedEvent{
			Entity:        "tripPoint",
			Action:        action.String(),
			ID:            msg.ID,
			TripID:        msg.TripID,
			Name:          msg.Name,
			Date:          msg.Date.Format(time.DateOnly),
			VisitOrder:    msg.VisitOrder,
			ChangedFields: msg.ChangedFields,
		}, false, nil
	}
}

func accommodationFeedTransform(action mq.Action) func(msg mq.AccommodationMessage) (feedEvent, bool, error) {
	return func(msg mq.AccommodationMessage) (feedEvent, bool, error) {
		return feedEvent{
			Entity:       "accommodation",
			Action:       action.String(),
			ID:           msg.ID,
			TripID:       msg.TripID,
			CheckInDate:  msg.CheckInDate.Format(time.DateOnly),
			CheckOutDate: msg.CheckOutDate.Format(time.DateOnly),
		}, false, nil
	}
}

// ItineraryFeed streams every itinerary change of one trip over a websocket.
// The connection closes when the client goes away or the server shuts down.
func (h *Handler) ItineraryFeed(c *gin.Context) {
	tripID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade itinerary feed connection: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	// Each processor owns and closes its stream; fan them into one.
	var streams []chan feedEvent
	newStream := func() chan feedEvent {
		ch := make(chan feedEvent, 8)
		streams = append(streams, ch)
		return ch
	}

	for _, action := range []mq.Action{mq.ActionCreate, mq.ActionUpdate, mq.ActionDelete} {
		if queue := h.queues.GetTripPointMessageQueue(action); queue != nil {
			mq.SubscribeProcessor(tripID, ctx, queue, pointFeedTransform(action), newStream())
		}
	}
	if queue := h.queues.GetAccommodationMessageQueue(mq.ActionCreate); queue != nil {
		mq.SubscribeProcessor(tripID, ctx, queue, accommodationFeedTransform(mq.ActionCreate), newStream())
	}

	events := make(chan feedEvent)
	var wg sync.WaitGroup
	for _, stream := range streams {
		wg.Add(1)
		go func(ch <-chan feedEvent) {
			defer wg.Done()
			for event := range ch {
				events <- event
			}
		}(stream)
	}
	go func() {
		wg.Wait()
		close(events)
	}()
	// If the writer bails early, keep draining so the forwarders can finish.
	defer func() {
		go func() {
			for range events {
			}
		}()
	}()

	// Drain client messages so pings and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Itinerary feed for trip %s closed: %v", tripID, err)
			return
		}
	}
}
