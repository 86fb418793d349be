package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"manara/internal/geo"

	"github.com/gin-gonic/gin"
)

// GET /api/destinations/search?q=...
// GET /api/destinations/search?lat=..&lng=..&radius=..
//
// With q set, matches by name/address. With lat/lng set, returns
// destinations within radius km sorted by distance.
func SearchDestinations(c *gin.Context) {
	svc := searchService(c)

	q := strings.TrimSpace(c.Query("q"))
	latStr := strings.TrimSpace(c.Query("lat"))
	lngStr := strings.TrimSpace(c.Query("lng"))

	switch {
	case latStr != "" || lngStr != "":
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "lat and lng must both be valid numbers", nil)
			return
		}
		radius, _ := strconv.ParseFloat(strings.TrimSpace(c.Query("radius")), 64)

		hits, err := svc.Nearby(geo.Point{Lat: lat, Lng: lng}, radius)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"destinations": hits})

	case q != "":
		list, err := svc.ByName(q, queryInt(c, "limit", 20))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"destinations": list})

	default:
		respondError(c, http.StatusBadRequest, "validation_error", "provide q or lat/lng", nil)
	}
}
