package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type DepositStatus string

const (
	DepositStatusPending    DepositStatus = "PENDING"
	DepositStatusCardSaved  DepositStatus = "CARD_SAVED"
	DepositStatusAuthorized DepositStatus = "AUTHORIZED"
	DepositStatusReleased   DepositStatus = "RELEASED"
	DepositStatusCaptured   DepositStatus = "CAPTURED"
)

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Booking is read-only here; its statuses are driven by the booking engine.
type Booking struct {
	ID                    string          `json:"id"`
	Reference             string          `json:"reference"`
	Customer              Customer        `json:"customer"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	AgencyID              string          `json:"agencyId"`
	TotalPrice            decimal.Decimal `json:"totalPrice"`
	Status                BookingStatus   `json:"status"`
	DepositStatus         DepositStatus   `json:"depositStatus"`
	DepositCapturedAmount decimal.Decimal `json:"depositCapturedAmount"`
}
