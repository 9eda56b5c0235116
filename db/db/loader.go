package db

import (
	"github.com/google/uuid"
	"github.com/vikstrous/dataloadgen"
)

type dataLoaderKey string

const (
	DataLoaderKeyPlanner dataLoaderKey = "planner_data_loader"
)

// PlannerDataLoader batches per-request lookups so listing handlers can
// resolve referenced POIs and trips without issuing one query per row.
type PlannerDataLoader struct {
	GetPOIList  *dataloadgen.Loader[uuid.UUID, *POI]
	GetTripList *dataloadgen.Loader[uuid.UUID, *Trip]
}

func NewPlannerDataLoader(dbWrapper PlannerDBWrapper) *PlannerDataLoader {
	return &PlannerDataLoader{
		GetPOIList:  dataloadgen.NewMappedLoader(dbWrapper.DataLoaderGetPOIList),
		GetTripList: dataloadgen.NewMappedLoader(dbWrapper.DataLoaderGetTripList),
	}
}
