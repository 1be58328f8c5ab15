package booking

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	// StatusRequested is the initial state: sent by a requester, awaiting the
	// provider's decision.
	StatusRequested Status = "REQUESTED"
	// StatusAccepted means the provider agreed to perform the service.
	StatusAccepted Status = "ACCEPTED"
	// StatusRejected means the provider declined the request. Terminal.
	StatusRejected Status = "REJECTED"
	// StatusCancelled means either party called the booking off. Terminal.
	StatusCancelled Status = "CANCELLED"
	// StatusCompleted means the service was performed. Terminal.
	StatusCompleted Status = "COMPLETED"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Category is the kind of service a booking requests.
type Category string

const (
	CategoryPlumber     Category = "PLUMBER"
	CategoryElectrician Category = "ELECTRICIAN"
	CategoryCleaner     Category = "CLEANER"
	CategoryLaundry     Category = "LAUNDRY"
	CategoryOther       Category = "OTHER"
)

// Valid reports whether the category is one of the known service kinds.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlumber, CategoryElectrician, CategoryCleaner, CategoryLaundry, CategoryOther:
		return true
	}
	return false
}

// Booking links a requester and a provider for one service engagement.
type Booking struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requester_id"`
	ProviderID  string     `json:"provider_id"`
	Category    Category   `json:"category"`
	Status      Status     `json:"status"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
