package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/tripmate/internal/client/client"
	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

// TripService loads the trip screens' data for the current token.
type TripService interface {
	LoadTrips(ctx context.Context, token string, filter models.TripFilter) ([]models.TripRow, error)
	MyTrips(ctx context.Context, token string) ([]models.TripRow, error)
	Stats(ctx context.Context, token string) (models.Stats, error)
	Account(ctx context.Context, token string) (models.Account, error)
	CreateTrip(ctx context.Context, token string, trip models.CreateTripPayload) (models.CreateTripResponse, error)
}

type tripService struct {
	client       client.Client
	coinsDefault int
}

// NewTripService returns a TripService. coinsDefault fills Stats.Coins when
// the backend omits it.
func NewTripService(c client.Client, coinsDefault int) TripService {
	return &tripService{client: c, coinsDefault: coinsDefault}
}

// LoadTrips fetches rides and bookings concurrently and returns them as one
// list, newest first.
func (s *tripService) LoadTrips(ctx context.Context, token string, filter models.TripFilter) ([]models.TripRow, error) {
	var (
		rides    []models.RideItem
		bookings []models.BookingItem
	)

	g, gctx := errgroup.WithContext(ctx)
	if filter != models.FilterBookings {
		g.Go(func() error {
			var err error
			rides, err = s.client.GetRides(gctx, token)
			if err != nil {
				return fmt.Errorf("load rides: %w", err)
			}
			return nil
		})
	}
	if filter != models.FilterTrips {
		g.Go(func() error {
			var err error
			bookings, err = s.client.GetBookings(gctx, token)
			if err != nil {
				return fmt.Errorf("load bookings: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]models.TripRow, 0, len(rides)+len(bookings))
	for _, r := range rides {
		rows = append(rows, models.RowFromRide(r))
	}
	for _, b := range bookings {
		rows = append(rows, models.RowFromBooking(b))
	}
	sortByDateDesc(rows)
	return filterRows(rows, filter), nil
}

func (s *tripService) MyTrips(ctx context.Context, token string) ([]models.TripRow, error) {
	items, err := s.client.GetMyTrips(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load my trips: %w", err)
	}
	rows := make([]models.TripRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.RowFromRide(it))
	}
	sortByDateDesc(rows)
	return rows, nil
}

func (s *tripService) Stats(ctx context.Context, token string) (models.Stats, error) {
	stats, err := s.client.GetStats(ctx, token)
	if err != nil {
		return stats, fmt.Errorf("load stats: %w", err)
	}
	if stats.Coins == nil {
		coins := s.coinsDefault
		stats.Coins = &coins
	}
	return stats, nil
}

func (s *tripService) Account(ctx context.Context, token string) (models.Account, error) {
	acc, err := s.client.GetAccount(ctx, token)
	if err != nil {
		return acc, fmt.Errorf("load account: %w", err)
	}
	return acc, nil
}

func (s *tripService) CreateTrip(ctx context.Context, token string, trip models.CreateTripPayload) (models.CreateTripResponse, error) {
	trip.Title = strings.TrimSpace(trip.Title)
	trip.From = strings.TrimSpace(trip.From)
	trip.To = strings.TrimSpace(trip.To)
	trip.Date = strings.TrimSpace(trip.Date)

	switch {
	case trip.Title == "":
		return models.CreateTripResponse{}, client.NewValidationError("Please enter a trip title.")
	case trip.From == "" || trip.To == "":
		return models.CreateTripResponse{}, client.NewValidationError("Please enter origin and destination.")
	}
	if _, err := time.Parse(dateLayout, trip.Date); err != nil {
		return models.CreateTripResponse{}, client.NewValidationError("Please enter the date as YYYY-MM-DD.")
	}

	return s.client.CreateTrip(ctx, token, trip)
}

// sortByDateDesc orders rows newest first. Dates are ISO strings, so
// lexical order is chronological.
func sortByDateDesc(rows []models.TripRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
}

func filterRows(rows []models.TripRow, filter models.TripFilter) []models.TripRow {
	var kind models.TripKind
	switch filter {
	case models.FilterTrips:
		kind = models.KindTrip
	case models.FilterBookings:
		kind = models.KindBooking
	default:
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// ParseFilter maps user input to a TripFilter; unknown values are
// FilterAll.
func ParseFilter(s string) models.TripFilter {
	switch models.TripFilter(strings.ToLower(strings.TrimSpace(s))) {
	case models.FilterTrips:
		return models.FilterTrips
	case models.FilterBookings:
		return models.FilterBookings
	default:
		return models.FilterAll
	}
}
