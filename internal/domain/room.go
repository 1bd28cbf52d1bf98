package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room is read-only reference data owned by property management.
type Room struct {
	ID         int64
	PropertyID int64
	TenantID   int64
	Name       string
	BasePrice  decimal.Decimal
}

type AdjustmentType string

const (
	AdjustmentNominal    AdjustmentType = "nominal"
	AdjustmentPercentage AdjustmentType = "percentage"
)

// PeakSeasonRate overrides a room's nightly rate for [StartDate, EndDate], both days inclusive.
// Exactly one of RoomID and PropertyID scopes the rule.
type PeakSeasonRate struct {
	ID              int64
	RoomID          *int64
	PropertyID      *int64
	StartDate       time.Time
	EndDate         time.Time
	AdjustmentType  AdjustmentType
	AdjustmentValue decimal.Decimal
}

// Applies reports whether the rate is scoped to room.
func (r PeakSeasonRate) Applies(room Room) bool {
	if r.RoomID != nil && *r.RoomID == room.ID {
		return true
	}
	return r.PropertyID != nil && *r.PropertyID == room.PropertyID
}
