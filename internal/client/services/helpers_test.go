package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripmate/internal/client/client"
	"github.com/dmitrijs2005/tripmate/internal/client/models"
	"github.com/dmitrijs2005/tripmate/internal/client/storage"
)

// ---- helpers ----

func sqliteStore(t *testing.T, path string) storage.Storage {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLite(db)
}

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tripmate.db")
}

// fakeStore is an in-memory store whose availability and failures are
// controlled by the test.
type fakeStore struct {
	*storage.Memory

	mu        sync.Mutex
	available bool
	setErr    error
	removed   []string
}

func newFakeStore(available bool) *fakeStore {
	return &fakeStore{Memory: storage.NewMemory(), available: available}
}

func (f *fakeStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	f.removed = append(f.removed, key)
	f.mu.Unlock()
	return f.Memory.Remove(ctx, key)
}

func (f *fakeStore) IsAvailable() bool { return f.available }

func (f *fakeStore) value(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := f.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

// ---- fake client ----

// fakeClient implements client.Client for unit tests of the services.
type fakeClient struct {
	mu sync.Mutex

	LoginRet any
	LoginErr error

	SignupRet any
	SignupErr error

	GetProfileRet any
	GetProfileErr error
	// GetProfileGate, when set, blocks GetProfile until it is closed.
	GetProfileGate chan struct{}

	UpdateProfileRet any
	UpdateProfileErr error

	MyTripsRet  []models.RideItem
	RidesRet    []models.RideItem
	RidesErr    error
	BookingsRet []models.BookingItem
	BookingsErr error
	StatsRet    models.Stats
	StatsErr    error
	AccountRet  models.Account
	CreateRet   models.CreateTripResponse
	PlacesRet   []models.PlaceResult
	PlacesErr   error

	LoginCalls         int
	SignupCalls        int
	GetProfileCalls    int
	UpdateProfileCalls int
	CreateCalls        int
	PlacesCalls        int

	LastCreds         models.Credentials
	LastSignup        models.SignupRequest
	LastProfileToken  string
	LastProfileUpdate models.ProfileDetails
	LastCreate        models.CreateTripPayload
}

var errBoom = errors.New("boom")

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, req models.SignupRequest) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignupCalls++
	f.LastSignup = req
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) GetProfile(ctx context.Context, token string) (any, error) {
	if f.GetProfileGate != nil {
		<-f.GetProfileGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetProfileCalls++
	f.LastProfileToken = token
	return f.GetProfileRet, f.GetProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, token string, details models.ProfileDetails) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateProfileCalls++
	f.LastProfileToken = token
	f.LastProfileUpdate = details
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) GetMyTrips(ctx context.Context, token string) ([]models.RideItem, error) {
	return f.MyTripsRet, nil
}

func (f *fakeClient) GetRides(ctx context.Context, token string) ([]models.RideItem, error) {
	return f.RidesRet, f.RidesErr
}

func (f *fakeClient) GetBookings(ctx context.Context, token string) ([]models.BookingItem, error) {
	return f.BookingsRet, f.BookingsErr
}

func (f *fakeClient) GetStats(ctx context.Context, token string) (models.Stats, error) {
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) GetAccount(ctx context.Context, token string) (models.Account, error) {
	return f.AccountRet, nil
}

func (f *fakeClient) CreateTrip(ctx context.Context, token string, trip models.CreateTripPayload) (models.CreateTripResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastCreate = trip
	return f.CreateRet, nil
}

func (f *fakeClient) NearbySearch(ctx context.Context, apiKey string, center models.LatLng, radius int) ([]models.PlaceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PlacesCalls++
	return f.PlacesRet, f.PlacesErr
}

func (f *fakeClient) calls() (login, signup, getProfile, updateProfile int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginCalls, f.SignupCalls, f.GetProfileCalls, f.UpdateProfileCalls
}
