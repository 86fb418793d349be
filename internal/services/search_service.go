package services

import (
	"sort"

	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/geo"
	"manara/internal/repositories"
	"manara/internal/utils"
)

// LocationFinder is the slice of LocationRepository the search needs;
// tests inject a fake.
type LocationFinder interface {
	Search(q string, limit int) ([]models.Location, error)
	InBox(box geo.BoundingBox) ([]models.Location, error)
}

// SearchService answers destination queries by name and by proximity.
type SearchService struct {
	LocationRepo LocationFinder
	RequestID    string
}

var _ LocationFinder = repositories.LocationRepository{}

// DestinationHit is a location plus its distance from the query point.
type DestinationHit struct {
	models.Location
	DistanceKm float64 `json:"distanceKm"`
}

const maxRadiusKm = 50.0

// ByName matches destinations on name/address substring.
func (s SearchService) ByName(q string, limit int) ([]models.Location, error) {
	q = utils.NormalizeSpace(q)
	if q == "" {
		return nil, domain.ValidationError{Field: "q", Msg: "search term is required"}
	}
	utils.LogEvent(s.RequestID, "search", "by_name", "q="+q)
	return s.LocationRepo.Search(q, limit)
}

// Nearby returns destinations within radiusKm of the point, closest first.
// A bounding box narrows the candidate set before exact distances.
func (s SearchService) Nearby(center geo.Point, radiusKm float64) ([]DestinationHit, error) {
	if !center.Valid() {
		return nil, domain.ValidationError{Msg: "latitude/longitude out of range"}
	}
	if radiusKm <= 0 {
		radiusKm = 5
	}
	if radiusKm > maxRadiusKm {
		return nil, domain.ValidationError{Field: "radius", Msg: "radius too large"}
	}

	candidates, err := s.LocationRepo.InBox(geo.BoxAround(center, radiusKm))
	if err != nil {
		return nil, err
	}

	hits := []DestinationHit{}
	for _, l := range candidates {
		d := geo.HaversineKm(center, geo.Point{Lat: l.Latitude, Lng: l.Longitude})
		if d <= radiusKm {
			hits = append(hits, DestinationHit{Location: l, DistanceKm: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].DistanceKm < hits[j].DistanceKm })

	utils.LogEvent(s.RequestID, "search", "nearby", "hits="+itoa(int64(len(hits))))
	return hits, nil
}
