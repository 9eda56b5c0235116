package pg

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// CreateAccommodation persists a booking. Interval ordering and overlap with
// existing bookings are not validated here.
func (pgdb *GORMPlannerDBWrapper) CreateAccommodation(acc *dbt.TripAccommodation) error {
	accModel := TripAccommodationModel{
		ID:           acc.ID,
		TripID:       acc.TripID,
		POIID:        acc.POIID,
		CheckInDate:  dbt.TruncateToDay(acc.CheckInDate),
		CheckOutDate: dbt.TruncateToDay(acc.CheckOutDate),
		Notes:        acc.Notes,
	}
	result := pgdb.db.Create(&accModel)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "violates foreign key constraint") {
			return fmt.Errorf("trip %s or POI %s: %w", acc.TripID, acc.POIID, dbt.ErrNotFound)
		}
		return fmt.Errorf("failed to create accommodation: %w", result.Error)
	}
	return nil
}

// GetAccommodationForDate returns the booking of a trip whose stay interval
// contains date, inclusive on both ends. With overlapping intervals the row
// the storage returns first wins; that case is unspecified behavior.
func (pgdb *GORMPlannerDBWrapper) GetAccommodationForDate(tripID uuid.UUID, date time.Time) (*dbt.TripAccommodation, error) {
	day := dbt.TruncateToDay(date)
	var accModel TripAccommodationModel
	result := pgdb.db.Where("trip_id = ? AND ? BETWEEN check_in_date AND check_out_date", tripID, day).
		First(&accModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("accommodation for trip %s on %s: %w",
				tripID, day.Format(time.DateOnly), dbt.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get accommodation for trip %s: %w", tripID, result.Error)
	}
	acc := accommodationFromModel(&accModel)
	return &acc, nil
}

// GetTripAccommodations returns a trip's bookings ordered by ascending
// check-in date.
func (pgdb *GORMPlannerDBWrapper) GetTripAccommodations(tripID uuid.UUID) ([]dbt.TripAccommodation, error) {
	var accModels []TripAccommodationModel
	result := pgdb.db.Where("trip_id = ?", tripID).Order("check_in_date ASC").Find(&accModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get accommodations for trip %s: %w", tripID, result.Error)
	}

	var accs []dbt.TripAccommodation
	for i := range accModels {
		accs = append(accs, accommodationFromModel(&accModels[i]))
	}
	return accs, nil
}

// DeleteTripAccommodations removes every booking of a trip. Removing none is
// not an error.
func (pgdb *GORMPlannerDBWrapper) DeleteTripAccommodations(tripID uuid.UUID) error {
	result := pgdb.db.Delete(&TripAccommodationModel{}, "trip_id = ?", tripID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete accommodations of trip %s: %w", tripID, result.Error)
	}
	return nil
}

func accommodationFromModel(m *TripAccommodationModel) dbt.TripAccommodation {
	return dbt.TripAccommodation{
		ID:           m.ID,
		TripID:       m.TripID,
		POIID:        m.POIID,
		CheckInDate:  dbt.TruncateToDay(m.CheckInDate),
		CheckOutDate: dbt.TruncateToDay(m.CheckOutDate),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}
