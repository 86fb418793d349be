package services

import (
	"testing"

	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/geo"
)

type fakeLocationFinder struct {
	searchQ   string
	locations []models.Location
	box       geo.BoundingBox
}

func (f *fakeLocationFinder) Search(q string, limit int) ([]models.Location, error) {
	f.searchQ = q
	return f.locations, nil
}

func (f *fakeLocationFinder) InBox(box geo.BoundingBox) ([]models.Location, error) {
	f.box = box
	return f.locations, nil
}

func TestSearchByNameNormalisesQuery(t *testing.T) {
	finder := &fakeLocationFinder{locations: []models.Location{{ID: 1, Name: "Thika Stage"}}}
	svc := SearchService{LocationRepo: finder}

	got, err := svc.ByName("  thika   stage ", 10)
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if finder.searchQ != "thika stage" {
		t.Fatalf("query not normalised: %q", finder.searchQ)
	}
	if len(got) != 1 || got[0].Name != "Thika Stage" {
		t.Fatalf("unexpected results: %+v", got)
	}

	if _, err := svc.ByName("   ", 10); !domain.IsValidation(err) {
		t.Fatalf("blank query should fail validation, got %v", err)
	}
}

func TestSearchNearbySortsAndFilters(t *testing.T) {
	// center is Nairobi CBD; candidates at growing distances, the last one
	// outside the requested radius
	nairobi := geo.Point{Lat: -1.28333, Lng: 36.81667}
	finder := &fakeLocationFinder{locations: []models.Location{
		{ID: 3, Name: "Westlands", Latitude: -1.2683, Longitude: 36.8111},
		{ID: 1, Name: "CBD", Latitude: -1.2834, Longitude: 36.8167},
		{ID: 2, Name: "Thika", Latitude: -1.0333, Longitude: 37.0693},
	}}
	svc := SearchService{LocationRepo: finder}

	hits, err := svc.Nearby(nairobi, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("want 2 hits inside 10km, got %d: %+v", len(hits), hits)
	}
	if hits[0].ID != 1 || hits[1].ID != 3 {
		t.Fatalf("hits not sorted by distance: %+v", hits)
	}
	if hits[0].DistanceKm > hits[1].DistanceKm {
		t.Fatalf("distances out of order: %v then %v", hits[0].DistanceKm, hits[1].DistanceKm)
	}
	if !finder.box.Contains(nairobi) {
		t.Fatal("candidate box should contain the center")
	}
}

func TestSearchNearbyValidation(t *testing.T) {
	svc := SearchService{LocationRepo: &fakeLocationFinder{}}

	if _, err := svc.Nearby(geo.Point{Lat: 91, Lng: 0}, 5); !domain.IsValidation(err) {
		t.Fatalf("invalid point should fail validation, got %v", err)
	}
	if _, err := svc.Nearby(geo.Point{Lat: -1.28, Lng: 36.82}, maxRadiusKm+1); !domain.IsValidation(err) {
		t.Fatalf("oversized radius should fail validation, got %v", err)
	}
}

func TestSearchNearbyDefaultsRadius(t *testing.T) {
	finder := &fakeLocationFinder{}
	svc := SearchService{LocationRepo: finder}

	if _, err := svc.Nearby(geo.Point{Lat: -1.28, Lng: 36.82}, 0); err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	// default radius is 5km, so the box must span more than the point
	if finder.box.MinLat >= finder.box.MaxLat || finder.box.MinLng >= finder.box.MaxLng {
		t.Fatalf("degenerate box for default radius: %+v", finder.box)
	}
}
