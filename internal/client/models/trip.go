package models

// TripKind tags a row of the combined trips list.
type TripKind string

const (
	KindTrip    TripKind = "trip"
	KindBooking TripKind = "booking"
)

// TripFilter selects rows of the combined trips list.
type TripFilter string

const (
	FilterAll      TripFilter = "all"
	FilterTrips    TripFilter = "trips"
	FilterBookings TripFilter = "bookings"
)

// RideItem is an element of GET /rides and GET /my-trips.
type RideItem struct {
	ID     string `json:"id" mapstructure:"id"`
	Title  string `json:"title" mapstructure:"title"`
	Date   string `json:"date" mapstructure:"date"`
	Status string `json:"status" mapstructure:"status"`
	Place  string `json:"place,omitempty" mapstructure:"place"`
	Price  string `json:"price,omitempty" mapstructure:"price"`
}

// BookingItem is an element of GET /bookings.
type BookingItem struct {
	ID     string `json:"id" mapstructure:"id"`
	Title  string `json:"title" mapstructure:"title"`
	Date   string `json:"date" mapstructure:"date"`
	Status string `json:"status" mapstructure:"status"`
	Place  string `json:"place,omitempty" mapstructure:"place"`
	Price  string `json:"price,omitempty" mapstructure:"price"`
}

// TripRow is one row of the combined rides+bookings list.
type TripRow struct {
	Kind   TripKind
	ID     string
	Title  string
	Date   string
	Status string
	Place  string
	Price  string
}

func RowFromRide(r RideItem) TripRow {
	return TripRow{Kind: KindTrip, ID: r.ID, Title: r.Title, Date: r.Date, Status: r.Status, Place: r.Place, Price: r.Price}
}

func RowFromBooking(b BookingItem) TripRow {
	return TripRow{Kind: KindBooking, ID: b.ID, Title: b.Title, Date: b.Date, Status: b.Status, Place: b.Place, Price: b.Price}
}

// CreateTripPayload is the body of POST /add_trip. Date is YYYY-MM-DD.
type CreateTripPayload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	From        string `json:"from"`
	To          string `json:"to"`
	Notes       string `json:"notes,omitempty"`
	ItineraryID string `json:"itineraryId,omitempty"`
}

type CreateTripResponse struct {
	ID string `json:"id" mapstructure:"id"`
}
