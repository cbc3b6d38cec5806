// Package booking holds the reservation domain: the record shapes the
// JSON store persists, the repository and cache ports, and the sentinel
// errors the services and HTTP layer branch on.
package booking

// Hotel carries its accepted reservation ids inline; the same ids also
// live in the reservations array. Nothing enforces the duplication
// beyond the linear scans done at write time.
type Hotel struct {
	ID           int64   `json:"hotel_id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Rooms        int     `json:"rooms"`
	Reservations []int64 `json:"reservations"`
}

type Customer struct {
	ID    int64  `json:"customer_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Reservation struct {
	ID         int64 `json:"reservation_id"`
	CustomerID int64 `json:"customer_id"`
	HotelID    int64 `json:"hotel_id"`
}

// Patches carry only the fields to change.
type HotelPatch struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Rooms    *int    `json:"rooms,omitempty"`
}

type CustomerPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
