package models

// Stats is the body of GET /stats.
type Stats struct {
	TotalDistanceKm float64 `json:"totalDistanceKm" mapstructure:"totalDistanceKm"`
	TripsCount      int     `json:"tripsCount" mapstructure:"tripsCount"`
	Coins           *int    `json:"coins,omitempty" mapstructure:"coins"`
}

// Account is the body of GET /me.
type Account struct {
	ID              string   `json:"id" mapstructure:"id"`
	Name            string   `json:"name" mapstructure:"name"`
	Email           string   `json:"email" mapstructure:"email"`
	MemberSince     string   `json:"memberSince,omitempty" mapstructure:"memberSince"`
	Tier            string   `json:"tier,omitempty" mapstructure:"tier"`
	Coins           *int     `json:"coins,omitempty" mapstructure:"coins"`
	TripsCount      *int     `json:"tripsCount,omitempty" mapstructure:"tripsCount"`
	TotalDistanceKm *float64 `json:"totalDistanceKm,omitempty" mapstructure:"totalDistanceKm"`
}
