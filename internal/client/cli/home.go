package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

// maxHomeTrips limits the recent trips shown on the home screen.
const maxHomeTrips = 3

// Home greets the user and shows stats plus the latest trips, loaded
// concurrently.
func (a *App) Home(ctx context.Context) error {
	var (
		stats models.Stats
		trips []models.TripRow
	)
	token := a.token()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.trips.Stats(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		trips, err = a.trips.MyTrips(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		a.reportError("Failed to load home", err)
		return err
	}

	a.printHeader(fmt.Sprintf("Hi, %s", a.userName()))
	if err := a.renderTable(statsRows(stats)); err != nil {
		return err
	}
	if len(trips) > maxHomeTrips {
		trips = trips[:maxHomeTrips]
	}
	fmt.Fprintln(a.out, "Recent trips")
	return a.printTripRows(trips)
}
