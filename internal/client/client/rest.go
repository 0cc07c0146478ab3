package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
	"github.com/dmitrijs2005/tripmate/internal/common"
)

const (
	PathLogin    = "/auth/login"
	PathSignup   = "/auth/signup"
	PathProfile  = "/profile"
	PathMyTrips  = "/my-trips"
	PathRides    = "/rides"
	PathBookings = "/bookings"
	PathStats    = "/stats"
	PathMe       = "/me"
	PathAddTrip  = "/add_trip"

	DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"
	pathNearbySearch     = "/nearbysearch/json"
)

// RESTClient implements Client over a Doer. Auth, profile, my-trips and
// add_trip live on authBaseURL; everything else on apiBaseURL.
type RESTClient struct {
	doer          Doer
	apiBaseURL    string
	authBaseURL   string
	placesBaseURL string
}

// NewRESTClient builds a client. An empty authBaseURL falls back to
// apiBaseURL, an empty placesBaseURL to the public Places endpoint.
func NewRESTClient(doer Doer, apiBaseURL, authBaseURL, placesBaseURL string) *RESTClient {
	if authBaseURL == "" {
		authBaseURL = apiBaseURL
	}
	if placesBaseURL == "" {
		placesBaseURL = DefaultPlacesBaseURL
	}
	return &RESTClient{
		doer:          doer,
		apiBaseURL:    strings.TrimRight(apiBaseURL, "/"),
		authBaseURL:   strings.TrimRight(authBaseURL, "/"),
		placesBaseURL: strings.TrimRight(placesBaseURL, "/"),
	}
}

func bearer(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{common.AuthorizationHeaderName: common.BearerPrefix + token}
}

func (c *RESTClient) call(ctx context.Context, method, url, token string, body any) (any, error) {
	return c.doer.Call(ctx, Request{Method: method, URL: url, Body: body, Headers: bearer(token)})
}

func (c *RESTClient) Login(ctx context.Context, creds models.Credentials) (any, error) {
	return c.call(ctx, http.MethodPost, c.authBaseURL+PathLogin, "", creds)
}

func (c *RESTClient) Signup(ctx context.Context, req models.SignupRequest) (any, error) {
	return c.call(ctx, http.MethodPost, c.authBaseURL+PathSignup, "", req)
}

func (c *RESTClient) GetProfile(ctx context.Context, token string) (any, error) {
	return c.call(ctx, http.MethodGet, c.authBaseURL+PathProfile, token, nil)
}

// UpdateProfile posts only the fields details carries; identity fields are
// never part of the body.
func (c *RESTClient) UpdateProfile(ctx context.Context, token string, details models.ProfileDetails) (any, error) {
	return c.call(ctx, http.MethodPost, c.authBaseURL+PathProfile, token, details)
}

func (c *RESTClient) GetMyTrips(ctx context.Context, token string) ([]models.RideItem, error) {
	raw, err := c.call(ctx, http.MethodGet, c.authBaseURL+PathMyTrips, token, nil)
	if err != nil {
		return nil, err
	}
	var items []models.RideItem
	if err := decodeList(raw, &items, "trips"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) GetRides(ctx context.Context, token string) ([]models.RideItem, error) {
	raw, err := c.call(ctx, http.MethodGet, c.apiBaseURL+PathRides, token, nil)
	if err != nil {
		return nil, err
	}
	var items []models.RideItem
	if err := decodeList(raw, &items, "rides", "trips"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) GetBookings(ctx context.Context, token string) ([]models.BookingItem, error) {
	raw, err := c.call(ctx, http.MethodGet, c.apiBaseURL+PathBookings, token, nil)
	if err != nil {
		return nil, err
	}
	var items []models.BookingItem
	if err := decodeList(raw, &items, "bookings"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) GetStats(ctx context.Context, token string) (models.Stats, error) {
	var stats models.Stats
	raw, err := c.call(ctx, http.MethodGet, c.apiBaseURL+PathStats, token, nil)
	if err != nil {
		return stats, err
	}
	err = decodeObject(raw, &stats)
	return stats, err
}

func (c *RESTClient) GetAccount(ctx context.Context, token string) (models.Account, error) {
	var acc models.Account
	raw, err := c.call(ctx, http.MethodGet, c.apiBaseURL+PathMe, token, nil)
	if err != nil {
		return acc, err
	}
	err = decodeObject(raw, &acc)
	return acc, err
}

func (c *RESTClient) CreateTrip(ctx context.Context, token string, trip models.CreateTripPayload) (models.CreateTripResponse, error) {
	var out models.CreateTripResponse
	raw, err := c.call(ctx, http.MethodPost, c.authBaseURL+PathAddTrip, token, trip)
	if err != nil {
		return out, err
	}
	// Some backends answer with an empty body or plain text.
	if _, ok := raw.(map[string]any); !ok {
		return out, nil
	}
	err = decodeObject(raw, &out)
	return out, err
}

// NearbySearch queries the Places Nearby Search endpoint. A non-OK status
// is an error only when the response carries no results.
func (c *RESTClient) NearbySearch(ctx context.Context, apiKey string, center models.LatLng, radius int) ([]models.PlaceResult, error) {
	q := url.Values{}
	q.Set("location", strconv.FormatFloat(center.Lat, 'f', -1, 64)+","+strconv.FormatFloat(center.Lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("key", apiKey)

	raw, err := c.call(ctx, http.MethodGet, c.placesBaseURL+pathNearbySearch+"?"+q.Encode(), "", nil)
	if err != nil {
		return nil, err
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	status, _ := m["status"].(string)
	if status != "OK" && m["results"] == nil {
		msg, _ := m["error_message"].(string)
		if msg == "" {
			msg = "Failed to load places"
		}
		return nil, &APIError{Kind: ErrServer, Message: msg, Err: errors.New(status)}
	}

	var results []models.PlaceResult
	if err := decodeList(m["results"], &results); err != nil {
		return nil, err
	}
	return results, nil
}
