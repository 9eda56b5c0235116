package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

type poiRequest struct {
	Name     string      `json:"name" binding:"required"`
	Location db.GeoPoint `json:"location" binding:"required"`
	POIType  db.POIType  `json:"poiType"`
	Category string      `json:"category"`
	Notes    string      `json:"notes"`
}

func (h *Handler) CreatePOI(c *gin.Context) {
	var req poiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poi, err := h.pois.Create(&db.POI{
		Name:     req.Name,
		Location: req.Location,
		POIType:  req.POIType,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poiToResponse(poi))
}

func (h *Handler) GetPOI(c *gin.Context) {
	poiID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	poi, err := h.pois.GetActiveByID(poiID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, poiToResponse(poi))
}

func (h *Handler) ListPOIs(c *gin.Context) {
	var pois []db.POI
	var err error
	if poiType := c.Query("type"); poiType != "" {
		pois, err = h.pois.ListActiveByType(db.POIType(poiType))
	} else {
		pois, err = h.pois.ListActive()
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, poisToResponse(pois))
}

// NearbyPOIs searches active POIs within a radius of a coordinate. lat and
// lng are degrees, radius is meters and inclusive at the boundary.
func (h *Handler) NearbyPOIs(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng must be a number"})
		return
	}
	radius, err := strconv.ParseFloat(c.Query("radius"), 64)
	if err != nil || radius < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a non-negative number of meters"})
		return
	}

	pois, err := h.pois.Nearby(lat, lng, radius)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, poisToResponse(pois))
}

// DeletePOI retires a POI. Unknown and already retired ids answer 204 alike.
func (h *Handler) DeletePOI(c *gin.Context) {
	poiID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	if err := h.pois.SoftDelete(poiID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
