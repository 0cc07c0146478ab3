package services

import (
	"context"
	"math"
	"strconv"

	"github.com/dmitrijs2005/tripmate/internal/client/client"
	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

const (
	// NearbyRadiusMeters is the search radius around the centre.
	NearbyRadiusMeters = 1500
	// MaxNearbyResults caps the returned places.
	MaxNearbyResults = 15

	earthRadiusKm = 6371.0
)

// PlacesService finds points of interest around a coordinate.
type PlacesService interface {
	Nearby(ctx context.Context, center models.LatLng) ([]models.NearbyPlace, error)
}

type placesService struct {
	client client.Client
	apiKey string
}

// NewPlacesService returns a PlacesService. Without an API key it serves
// sample places and never touches the network.
func NewPlacesService(c client.Client, apiKey string) PlacesService {
	return &placesService{client: c, apiKey: apiKey}
}

func (s *placesService) Nearby(ctx context.Context, center models.LatLng) ([]models.NearbyPlace, error) {
	if s.apiKey == "" {
		return samplePlaces(center), nil
	}

	results, err := s.client.NearbySearch(ctx, s.apiKey, center, NearbyRadiusMeters)
	if err != nil {
		return nil, err
	}
	if len(results) > MaxNearbyResults {
		results = results[:MaxNearbyResults]
	}

	places := make([]models.NearbyPlace, 0, len(results))
	for i, r := range results {
		loc := center
		if r.Geometry.Location != nil {
			loc = *r.Geometry.Location
		}
		id := r.PlaceID
		if id == "" {
			id = strconv.Itoa(i)
		}
		places = append(places, models.NearbyPlace{
			ID:         id,
			Name:       r.Name,
			Lat:        loc.Lat,
			Lng:        loc.Lng,
			Vicinity:   r.Vicinity,
			Types:      r.Types,
			DistanceKm: DistanceKm(center, loc),
		})
	}
	return places, nil
}

func samplePlaces(center models.LatLng) []models.NearbyPlace {
	places := []models.NearbyPlace{
		{ID: "1", Name: "Sample Park", Lat: center.Lat + 0.01, Lng: center.Lng + 0.01},
		{ID: "2", Name: "Sample Cafe", Lat: center.Lat - 0.008, Lng: center.Lng - 0.006},
	}
	for i := range places {
		places[i].DistanceKm = DistanceKm(center, models.LatLng{Lat: places[i].Lat, Lng: places[i].Lng})
	}
	return places
}

// DistanceKm is the haversine great-circle distance between a and b.
func DistanceKm(a, b models.LatLng) float64 {
	toRad := func(v float64) float64 { return v * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
