package itinerary

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

// AccommodationService resolves where a traveller sleeps on a given night.
// Overlapping bookings are not validated; resolution returns the first match
// in storage order.
type AccommodationService struct {
	store  db.PlannerDBWrapper
	queues mq.ItineraryMessageQueueWrapper
}

func NewAccommodationService(store db.PlannerDBWrapper, queues mq.ItineraryMessageQueueWrapper) *AccommodationService {
	return &AccommodationService{store: store, queues: queues}
}

// Add books an accommodation for a trip. Both the trip and the POI must
// exist; date ordering and overlaps are not checked.
func (s *AccommodationService) Add(acc *db.TripAccommodation) (*db.TripAccommodation, error) {
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	acc.CreatedAt = time.Now().UTC()

	if err := s.store.CreateAccommodation(acc); err != nil {
		return nil, err
	}

	s.publishAccommodationEvent(mq.ActionCreate, acc)
	return acc, nil
}

// ResolveForDate finds the booking covering the given date, inclusive on both
// the check-in and check-out day.
func (s *AccommodationService) ResolveForDate(tripID uuid.UUID, date time.Time) (*db.TripAccommodation, error) {
	return s.store.GetAccommodationForDate(tripID, date)
}

// ListForTrip returns a trip's bookings ordered by check-in date ascending.
func (s *AccommodationService) ListForTrip(tripID uuid.UUID) ([]db.TripAccommodation, error) {
	return s.store.GetTripAccommodations(tripID)
}

// ResolvedAccommodation pairs a booking with its place details. POI is nil
// when the referenced record no longer exists.
type ResolvedAccommodation struct {
	Accommodation db.TripAccommodation
	POI           *db.POI
}

// ListForTripResolved returns a trip's bookings with their POIs resolved in a
// single batch. Retired POIs still resolve; historical bookings must keep
// their place details.
func (s *AccommodationService) ListForTripResolved(ctx context.Context, loader *db.PlannerDataLoader, tripID uuid.UUID) ([]ResolvedAccommodation, error) {
	accs, err := s.store.GetTripAccommodations(tripID)
	if err != nil {
		return nil, err
	}

	resolved := make([]ResolvedAccommodation, 0, len(accs))
	for _, acc := range accs {
		poi, err := loader.GetPOIList.Load(ctx, acc.POIID)
		if err != nil {
			log.Printf("Failed to resolve POI %s for accommodation %s: %v", acc.POIID, acc.ID, err)
			poi = nil
		}
		resolved = append(resolved, ResolvedAccommodation{Accommodation: acc, POI: poi})
	}
	return resolved, nil
}

func (s *AccommodationService) publishAccommodationEvent(action mq.Action, acc *db.TripAccommodation) {
	if s.queues == nil {
		return
	}
	queue := s.queues.GetAccommodationMessageQueue(action)
	if queue == nil {
		return
	}
	msg := mq.AccommodationMessage{
		ID:           acc.ID,
		TripID:       acc.TripID,
		POIID:        acc.POIID,
		CheckInDate:  acc.CheckInDate,
		CheckOutDate: acc.CheckOutDate,
	}
	if err := queue.Publish(msg); err != nil {
		log.Printf("Failed to publish accommodation %s event for %s: %v", action, acc.ID, err)
	}
}
