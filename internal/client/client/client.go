package client

import (
	"context"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

// Client is the backend contract used by the services. Auth responses are
// returned undecoded because their shape varies between backends.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (any, error)
	Signup(ctx context.Context, req models.SignupRequest) (any, error)
	GetProfile(ctx context.Context, token string) (any, error)
	UpdateProfile(ctx context.Context, token string, details models.ProfileDetails) (any, error)
	GetMyTrips(ctx context.Context, token string) ([]models.RideItem, error)
	GetRides(ctx context.Context, token string) ([]models.RideItem, error)
	GetBookings(ctx context.Context, token string) ([]models.BookingItem, error)
	GetStats(ctx context.Context, token string) (models.Stats, error)
	GetAccount(ctx context.Context, token string) (models.Account, error)
	CreateTrip(ctx context.Context, token string, trip models.CreateTripPayload) (models.CreateTripResponse, error)
	NearbySearch(ctx context.Context, apiKey string, center models.LatLng, radius int) ([]models.PlaceResult, error)
}
