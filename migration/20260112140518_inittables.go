package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInitTables, downInitTables)
}

func upInitTables(ctx context.Context, tx *sql.Tx) error {
	// PostGIS provides the geometry type and the ST_* functions used by the
	// location columns and the nearby query.
	_, err := tx.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS postgis;`)
	if err != nil {
		return err
	}

	// Create trips table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE trips (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			total_budget NUMERIC(12,2) NOT NULL DEFAULT 0,
			destination VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX idx_trips_user_id ON trips(user_id);`)
	if err != nil {
		return err
	}

	// Create trip_points table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE trip_points (
			id UUID PRIMARY KEY,
			trip_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			date DATE NOT NULL,
			visit_order INTEGER NOT NULL DEFAULT 0,
			point_type VARCHAR(32) NOT NULL,
			planned_duration INTEGER NOT NULL DEFAULT 0,
			planned_time VARCHAR(8) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			location_name VARCHAR(255) NOT NULL DEFAULT '',
			location geometry(Point, 4326),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_trip_points_trip
				FOREIGN KEY(trip_id)
				REFERENCES trips(id)
				ON UPDATE CASCADE
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX idx_trip_points_trip_id ON trip_points(trip_id);`)
	if err != nil {
		return err
	}

	// Cross-trip day query orders by (trip_id, visit_order) for one date.
	_, err = tx.ExecContext(ctx, `CREATE INDEX idx_trip_points_date ON trip_points(date, trip_id, visit_order);`)
	if err != nil {
		return err
	}

	// Create poi table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE poi (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			location geometry(Point, 4326) NOT NULL,
			poi_type VARCHAR(32) NOT NULL,
			category VARCHAR(255) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			state VARCHAR(16) NOT NULL DEFAULT 'active',
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX idx_poi_location ON poi USING GIST(location);`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX idx_poi_state_type ON poi(state, poi_type);`)
	if err != nil {
		return err
	}

	// Create trip_accommodation table
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE trip_accommodation (
			id UUID PRIMARY KEY,
			trip_id UUID NOT NULL,
			poi_id UUID NOT NULL,
			check_in_date DATE NOT NULL,
			check_out_date DATE NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_trip_accommodation_trip
				FOREIGN KEY(trip_id)
				REFERENCES trips(id)
				ON UPDATE CASCADE,
			CONSTRAINT fk_trip_accommodation_poi
				FOREIGN KEY(poi_id)
				REFERENCES poi(id)
				ON UPDATE CASCADE
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX idx_trip_accommodation_trip_dates ON trip_accommodation(trip_id, check_in_date, check_out_date);`)
	if err != nil {
		return err
	}

	return nil
}

func downInitTables(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS trip_accommodation;`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DROP TABLE IF EXISTS trip_points;`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DROP TABLE IF EXISTS poi;`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DROP TABLE IF EXISTS trips;`)
	if err != nil {
		return err
	}

	return nil
}
