package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripmate/internal/client/client"
	"github.com/dmitrijs2005/tripmate/internal/client/models"
	"github.com/dmitrijs2005/tripmate/internal/client/services"
)

// Trips prints rides and bookings, newest first, optionally filtered.
func (a *App) Trips(ctx context.Context, filter string) error {
	rows, err := a.trips.LoadTrips(ctx, a.token(), services.ParseFilter(filter))
	if err != nil {
		a.reportError("Failed to load trips", err)
		return err
	}
	return a.printTripRows(rows)
}

// MyTrips prints the trips created by the current user.
func (a *App) MyTrips(ctx context.Context) error {
	rows, err := a.trips.MyTrips(ctx, a.token())
	if err != nil {
		a.reportError("Failed to load your trips", err)
		return err
	}
	return a.printTripRows(rows)
}

func (a *App) printTripRows(rows []models.TripRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No trips yet")
		return nil
	}
	table := [][]string{{"Type", "Title", "Date", "Status", "Place", "Price"}}
	for _, r := range rows {
		table = append(table, []string{string(r.Kind), r.Title, r.Date, r.Status, r.Place, r.Price})
	}
	return a.renderTable(table)
}

// Stats prints travel totals and the coin balance.
func (a *App) Stats(ctx context.Context) error {
	st, err := a.trips.Stats(ctx, a.token())
	if err != nil {
		a.reportError("Failed to load stats", err)
		return err
	}
	return a.renderTable(statsRows(st))
}

func statsRows(st models.Stats) [][]string {
	rows := [][]string{
		{"Trips", strconv.Itoa(st.TripsCount)},
		{"Distance", fmt.Sprintf("%.1f km", st.TotalDistanceKm)},
	}
	if st.Coins != nil {
		rows = append(rows, []string{"Coins", strconv.Itoa(*st.Coins)})
	}
	return rows
}

// Account prints the backend account record.
func (a *App) Account(ctx context.Context) error {
	acc, err := a.trips.Account(ctx, a.token())
	if err != nil {
		a.reportError("Failed to load account", err)
		return err
	}

	rows := [][]string{
		{"ID", acc.ID},
		{"Name", acc.Name},
		{"Email", acc.Email},
	}
	if acc.MemberSince != "" {
		rows = append(rows, []string{"Member since", acc.MemberSince})
	}
	if acc.Tier != "" {
		rows = append(rows, []string{"Tier", acc.Tier})
	}
	if acc.Coins != nil {
		rows = append(rows, []string{"Coins", strconv.Itoa(*acc.Coins)})
	}
	if acc.TripsCount != nil {
		rows = append(rows, []string{"Trips", strconv.Itoa(*acc.TripsCount)})
	}
	if acc.TotalDistanceKm != nil {
		rows = append(rows, []string{"Distance", fmt.Sprintf("%.1f km", *acc.TotalDistanceKm)})
	}
	return a.renderTable(rows)
}

// PlanTrip prompts for a new trip and posts it.
func (a *App) PlanTrip(ctx context.Context) error {
	fields, err := a.prompts(
		"Trip title",
		"From",
		"To",
		"Date (YYYY-MM-DD)",
		"Notes (optional)",
	)
	if err != nil {
		return err
	}

	trip := models.CreateTripPayload{
		Title: fields[0],
		From:  fields[1],
		To:    fields[2],
		Date:  fields[3],
		Notes: fields[4],
	}
	res, err := a.trips.CreateTrip(ctx, a.token(), trip)
	if err != nil {
		a.reportError("Could not create trip", err)
		return err
	}

	msg := "Trip planned"
	if res.ID != "" {
		msg += " (id " + res.ID + ")"
	}
	a.printSuccess(msg)
	return nil
}

// reportError prints a one-line failure with the most useful detail the
// error carries.
func (a *App) reportError(prefix string, err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		a.printError(prefix + ": " + apiErr.Message)
	case errors.Is(err, client.ErrNetwork):
		a.printError(prefix + ": network unavailable")
	default:
		a.printError(prefix + ": " + strings.TrimSpace(err.Error()))
	}
	a.log.Debug(context.Background(), prefix, "error", err)
}
