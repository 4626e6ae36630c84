// model/rental.go
package model

import "time"

type RentalMode string

const (
	ModePurchase RentalMode = "purchase"
	ModeRent     RentalMode = "rent"
)

func (m RentalMode) Valid() bool {
	return m == ModePurchase || m == ModeRent
}

type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalExpired   RentalStatus = "expired"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalActive, RentalCompleted, RentalExpired:
		return true
	}
	return false
}

// CanTransitionTo allows active -> completed and active -> expired only.
// completed and expired never change again.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == RentalActive
}

type Rental struct {
	ID           int64        `json:"id"`
	BookID       int64        `json:"book_id"`
	UserName     string       `json:"user_name"`
	Mode         RentalMode   `json:"mode"`
	DurationDays *int         `json:"duration_days,omitempty"`
	StartAt      time.Time    `json:"start_at"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	Status       RentalStatus `json:"status"`
	Reminded     bool         `json:"reminded"`
}
