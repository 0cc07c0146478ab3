package models

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `mapstructure:"lat"`
	Lng float64 `mapstructure:"lng"`
}

// PlaceResult is one element of the Places Nearby Search "results" array.
type PlaceResult struct {
	PlaceID  string   `mapstructure:"place_id"`
	Name     string   `mapstructure:"name"`
	Vicinity string   `mapstructure:"vicinity"`
	Types    []string `mapstructure:"types"`
	Geometry struct {
		Location *LatLng `mapstructure:"location"`
	} `mapstructure:"geometry"`
}

// NearbyPlace is a point of interest around the user, with its distance.
type NearbyPlace struct {
	ID         string
	Name       string
	Lat        float64
	Lng        float64
	Vicinity   string
	Types      []string
	DistanceKm float64
}
