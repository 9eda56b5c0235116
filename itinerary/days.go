package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

// DayService answers calendar-day questions. It is a separate type so the
// boundary layer can expose the cross-trip view to operators only.
type DayService struct {
	store db.PlannerDBWrapper
}

func NewDayService(store db.PlannerDBWrapper) *DayService {
	return &DayService{store: store}
}

// ListByDay returns every stop planned on the given calendar day across all
// trips, grouped by trip id and ordered by visit order within each trip.
func (s *DayService) ListByDay(date time.Time) ([]db.TripPoint, error) {
	return s.store.GetPointsByDay(date)
}

// DayCount is the whole-day difference between a trip's start and end dates.
// A trip starting and ending on the same date counts 0.
func (s *DayService) DayCount(tripID uuid.UUID) (int, error) {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return 0, err
	}
	start := db.TruncateToDay(trip.StartDate)
	end := db.TruncateToDay(trip.EndDate)
	return int(end.Sub(start).Hours() / 24), nil
}
