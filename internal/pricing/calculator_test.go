package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var local = clock.NewLocal(clock.DefaultLocalOffset)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertPrice(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}

func TestTotal_NoOverridesIsBaseTimesNights(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("350000.50")}
	for nights := 0; nights <= 5; nights++ {
		checkIn := day(2024, 12, 29)
		got := Total(room, nil, checkIn, checkIn.AddDate(0, 0, nights), local)
		assertPrice(t, room.BasePrice.Mul(decimal.NewFromInt(int64(nights))).String(), got)
	}
}

func TestTotal_CheckoutDayIsNotCharged(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("100")}
	got := Total(room, nil, day(2024, 6, 9), day(2024, 6, 9), local)
	assert.True(t, got.IsZero())
}

func TestTotal_NominalOverrideScenario(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("100")}
	rates := []domain.PeakSeasonRate{{
		ID:              1,
		RoomID:          ptr(1),
		StartDate:       day(2024, 6, 10),
		EndDate:         day(2024, 6, 10),
		AdjustmentType:  domain.AdjustmentNominal,
		AdjustmentValue: dec("150"),
	}}

	got := Total(room, rates, day(2024, 6, 9), day(2024, 6, 11), local)
	assertPrice(t, "250", got)
}

func TestNightlyRate_Percentage(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("200")}
	rates := []domain.PeakSeasonRate{{
		ID:              1,
		PropertyID:      ptr(10),
		StartDate:       day(2024, 12, 24),
		EndDate:         day(2024, 12, 26),
		AdjustmentType:  domain.AdjustmentPercentage,
		AdjustmentValue: dec("25"),
	}}

	assertPrice(t, "250", NightlyRate(room, rates, day(2024, 12, 25), local))
	assertPrice(t, "200", NightlyRate(room, rates, day(2024, 12, 27), local))

	negative := []domain.PeakSeasonRate{{
		ID:              2,
		RoomID:          ptr(1),
		StartDate:       day(2024, 2, 1),
		EndDate:         day(2024, 2, 29),
		AdjustmentType:  domain.AdjustmentPercentage,
		AdjustmentValue: dec("-12.5"),
	}}
	assertPrice(t, "175", NightlyRate(room, negative, day(2024, 2, 14), local))
}

func TestNightlyRate_FirstMatchWinsWithoutStacking(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("100")}
	rates := []domain.PeakSeasonRate{
		{ID: 1, PropertyID: ptr(10), StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 30), AdjustmentType: domain.AdjustmentPercentage, AdjustmentValue: dec("10")},
		{ID: 2, RoomID: ptr(1), StartDate: day(2024, 6, 15), EndDate: day(2024, 6, 15), AdjustmentType: domain.AdjustmentNominal, AdjustmentValue: dec("500")},
	}

	assertPrice(t, "110", NightlyRate(room, rates, day(2024, 6, 15), local))

	reversed := []domain.PeakSeasonRate{rates[1], rates[0]}
	assertPrice(t, "500", NightlyRate(room, reversed, day(2024, 6, 15), local))
}

func TestNightlyRate_IgnoresRatesForOtherRooms(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("100")}
	rates := []domain.PeakSeasonRate{
		{ID: 1, RoomID: ptr(2), StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 30), AdjustmentType: domain.AdjustmentNominal, AdjustmentValue: dec("999")},
		{ID: 2, PropertyID: ptr(11), StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 30), AdjustmentType: domain.AdjustmentNominal, AdjustmentValue: dec("888")},
	}

	assertPrice(t, "100", NightlyRate(room, rates, day(2024, 6, 15), local))
}

func TestTotal_UsesLocalCalendarDays(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 1, PropertyID: 10, BasePrice: dec("100")}
	rates := []domain.PeakSeasonRate{{
		ID: 1, RoomID: ptr(1), StartDate: day(2024, 6, 10), EndDate: day(2024, 6, 10),
		AdjustmentType: domain.AdjustmentNominal, AdjustmentValue: dec("150"),
	}}

	// 17:00 UTC on 06-09 is already 06-10 locally, so the single night is the peak night.
	checkIn := time.Date(2024, 6, 9, 17, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)
	assertPrice(t, "150", Total(room, rates, checkIn, checkOut, local))
}

func TestCalculator_ComputeTotalPrice(t *testing.T) {
	t.Parallel()

	room := domain.Room{ID: 7, PropertyID: 3, TenantID: 42, BasePrice: dec("100")}
	cat := &fakeCatalog{
		rooms: map[int64]domain.Room{7: room},
		rates: []domain.PeakSeasonRate{{
			ID: 1, RoomID: ptr(7), StartDate: day(2024, 6, 10), EndDate: day(2024, 6, 10),
			AdjustmentType: domain.AdjustmentNominal, AdjustmentValue: dec("150"),
		}},
	}
	calc := NewCalculator(cat, local)

	got, err := calc.ComputeTotalPrice(context.Background(), 7, day(2024, 6, 9), day(2024, 6, 11))
	require.NoError(t, err)
	assertPrice(t, "250", got)
	assert.Equal(t, 1, cat.rateCalls)

	// Rates are re-read on every call.
	cat.rates = nil
	got, err = calc.ComputeTotalPrice(context.Background(), 7, day(2024, 6, 9), day(2024, 6, 11))
	require.NoError(t, err)
	assertPrice(t, "200", got)
	assert.Equal(t, 2, cat.rateCalls)

	_, err = calc.ComputeTotalPrice(context.Background(), 99, day(2024, 6, 9), day(2024, 6, 11))
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	cat.err = errors.New("db down")
	_, err = calc.ComputeTotalPrice(context.Background(), 7, day(2024, 6, 9), day(2024, 6, 11))
	require.Error(t, err)
}

type fakeCatalog struct {
	rooms     map[int64]domain.Room
	rates     []domain.PeakSeasonRate
	err       error
	rateCalls int
}

func (f *fakeCatalog) GetRoom(_ context.Context, roomID int64) (domain.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeCatalog) ListRates(_ context.Context, _ domain.Room, _, _ time.Time) ([]domain.PeakSeasonRate, error) {
	f.rateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}
