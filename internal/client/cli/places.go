package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

// defaultCenter is used when nearby is called without coordinates.
var defaultCenter = models.LatLng{Lat: 40.758, Lng: -73.9855}

// Nearby lists places around the given "lat lng" or the default centre.
func (a *App) Nearby(ctx context.Context, args []string) error {
	center, err := parseCenter(args)
	if err != nil {
		a.printError(err.Error())
		return err
	}

	places, err := a.places.Nearby(ctx, center)
	if err != nil {
		a.reportError("Failed to load places", err)
		return err
	}
	if len(places) == 0 {
		fmt.Fprintln(a.out, "No places found")
		return nil
	}

	rows := [][]string{{"Name", "Distance", "Vicinity", "Types"}}
	for _, p := range places {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%.2f km", p.DistanceKm),
			p.Vicinity,
			strings.Join(p.Types, ", "),
		})
	}
	return a.renderTable(rows)
}

func parseCenter(args []string) (models.LatLng, error) {
	switch len(args) {
	case 0:
		return defaultCenter, nil
	case 2:
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil || lat < -90 || lat > 90 {
			return models.LatLng{}, fmt.Errorf("invalid latitude %q", args[0])
		}
		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil || lng < -180 || lng > 180 {
			return models.LatLng{}, fmt.Errorf("invalid longitude %q", args[1])
		}
		return models.LatLng{Lat: lat, Lng: lng}, nil
	default:
		return models.LatLng{}, fmt.Errorf("usage: nearby <lat> <lng>")
	}
}
