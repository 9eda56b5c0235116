package itinerary

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/libs/diff"
	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

// PointService manages the planned stops of a trip and publishes change
// events on the itinerary queues. Event publishing is best effort: a failed
// publish is logged, never rolled back.
type PointService struct {
	store  db.PlannerDBWrapper
	queues mq.ItineraryMessageQueueWrapper
}

func NewPointService(store db.PlannerDBWrapper, queues mq.ItineraryMessageQueueWrapper) *PointService {
	return &PointService{store: store, queues: queues}
}

// Create adds a stop to a trip the caller owns. The trip must exist. Duplicate
// visit orders within a day are accepted.
func (s *PointService) Create(userID uuid.UUID, point *db.TripPoint) (*db.TripPoint, error) {
	if err := s.checkOwnership(userID, point.TripID); err != nil {
		return nil, err
	}

	if point.ID == uuid.Nil {
		point.ID = uuid.New()
	}
	point.Date = db.TruncateToDay(point.Date)
	point.CreatedAt = time.Now().UTC()

	if err := s.store.CreateTripPoint(point); err != nil {
		return nil, err
	}

	s.publishPointEvent(mq.ActionCreate, point, nil)
	return point, nil
}

func (s *PointService) Get(id uuid.UUID) (*db.TripPoint, error) {
	return s.store.GetTripPoint(id)
}

// Update replaces every mutable field of an existing stop. The trip
// association is fixed at creation and cannot move.
func (s *PointService) Update(userID uuid.UUID, point *db.TripPoint) (*db.TripPoint, error) {
	existing, err := s.store.GetTripPoint(point.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(userID, existing.TripID); err != nil {
		return nil, err
	}

	point.TripID = existing.TripID
	point.Date = db.TruncateToDay(point.Date)
	if err := s.store.UpdateTripPoint(point); err != nil {
		return nil, err
	}

	updated, err := s.store.GetTripPoint(point.ID)
	if err != nil {
		return nil, err
	}

	changed, diffErr := diff.ChangedFields(*existing, *updated)
	if diffErr != nil {
		log.Printf("Failed to diff trip point %s: %v", point.ID, diffErr)
	}
	s.publishPointEvent(mq.ActionUpdate, updated, changed)
	return updated, nil
}

// Delete removes a single stop from a trip the caller owns.
func (s *PointService) Delete(userID uuid.UUID, id uuid.UUID) error {
	point, err := s.store.GetTripPoint(id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(userID, point.TripID); err != nil {
		return err
	}

	if err := s.store.DeleteTripPoint(id); err != nil {
		return err
	}
	s.publishPointEvent(mq.ActionDelete, point, nil)
	return nil
}

// ListByTrip returns every stop of a trip ordered by date ascending. Same-day
// stops keep storage order; visit order is not a tiebreak here.
func (s *PointService) ListByTrip(tripID uuid.UUID) ([]db.TripPoint, error) {
	return s.store.GetTripPoints(tripID)
}

// ListByTripAndDay returns the stops of one trip on one calendar day, in
// storage order.
func (s *PointService) ListByTripAndDay(tripID uuid.UUID, date time.Time) ([]db.TripPoint, error) {
	return s.store.GetTripPointsByDay(tripID, date)
}

// ListByType returns the stops of a trip with the given point type.
func (s *PointService) ListByType(tripID uuid.UUID, pointType db.PointType) ([]db.TripPoint, error) {
	return s.store.GetTripPointsByType(tripID, pointType)
}

func (s *PointService) checkOwnership(userID uuid.UUID, tripID uuid.UUID) error {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return err
	}
	if trip.UserID != userID {
		return fmt.Errorf("user %s does not own trip %s: %w", userID, tripID, ErrUnauthorized)
	}
	return nil
}

func (s *PointService) publishPointEvent(action mq.Action, point *db.TripPoint, changedFields []string) {
	if s.queues == nil {
		return
	}
	queue := s.queues.GetTripPointMessageQueue(action)
	if queue == nil {
		return
	}
	msg := mq.TripPointMessage{
		ID:            point.ID,
		TripID:        point.TripID,
		Name:          point.Name,
		Date:          point.Date,
		VisitOrder:    point.VisitOrder,
		ChangedFields: changedFields,
	}
	if err := queue.Publish(msg); err != nil {
		log.Printf("Failed to publish trip point %s event for %s: %v", action, point.ID, err)
	}
}
