package pricing

import (
	"context"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// nightlyPrecision is the number of fractional digits kept per night.
const nightlyPrecision = 2

// Catalog is the read-only source of rooms and peak season rates.
type Catalog interface {
	GetRoom(ctx context.Context, roomID int64) (domain.Room, error)
	// ListRates returns rates scoped to the room or its property that may
	// touch [from, to), in a stable enumeration order.
	ListRates(ctx context.Context, room domain.Room, from, to time.Time) ([]domain.PeakSeasonRate, error)
}

// Calculator prices a stay night by night. It holds no cache: every call
// reads a fresh snapshot of the room and its rates.
type Calculator struct {
	catalog Catalog
	local   clock.Local
}

func NewCalculator(catalog Catalog, local clock.Local) *Calculator {
	return &Calculator{catalog: catalog, local: local}
}

// ComputeTotalPrice returns the total owed for [checkIn, checkOut).
func (c *Calculator) ComputeTotalPrice(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	room, err := c.catalog.GetRoom(ctx, roomID)
	if err != nil {
		return decimal.Zero, err
	}
	rates, err := c.catalog.ListRates(ctx, room, checkIn, checkOut)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(room, rates, checkIn, checkOut, c.local), nil
}

// Total sums nightly rates from the local day of checkIn up to, but not
// including, the local day of checkOut.
func Total(room domain.Room, rates []domain.PeakSeasonRate, checkIn, checkOut time.Time, local clock.Local) decimal.Decimal {
	total := decimal.Zero
	end := local.Day(checkOut)
	for day := local.Day(checkIn); day.Before(end); day = day.AddDate(0, 0, 1) {
		total = total.Add(NightlyRate(room, rates, day, local))
	}
	return total
}

// NightlyRate prices a single local day using the first rate covering it.
func NightlyRate(room domain.Room, rates []domain.PeakSeasonRate, day time.Time, local clock.Local) decimal.Decimal {
	base := room.BasePrice
	for _, r := range rates {
		if !r.Applies(room) {
			continue
		}
		if day.Before(local.Day(r.StartDate)) || day.After(local.Day(r.EndDate)) {
			continue
		}
		switch r.AdjustmentType {
		case domain.AdjustmentNominal:
			return r.AdjustmentValue.Round(nightlyPrecision)
		case domain.AdjustmentPercentage:
			delta := base.Mul(r.AdjustmentValue).Div(decimal.NewFromInt(100))
			return base.Add(delta).Round(nightlyPrecision)
		}
	}
	return base.Round(nightlyPrecision)
}
