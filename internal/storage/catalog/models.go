package catalog

import (
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

type property struct {
	ID       int64 `gorm:"primaryKey"`
	TenantID int64 `gorm:"not null;index"`
	Name     string
}

func (property) TableName() string { return "properties" }

type room struct {
	ID         int64 `gorm:"primaryKey"`
	PropertyID int64 `gorm:"not null;index"`
	Name       string
	BasePrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (room) TableName() string { return "rooms" }

type peakSeasonRate struct {
	ID              int64 `gorm:"primaryKey"`
	RoomID          *int64
	PropertyID      *int64
	StartDate       time.Time       `gorm:"not null"`
	EndDate         time.Time       `gorm:"not null"`
	AdjustmentType  string          `gorm:"not null"`
	AdjustmentValue decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (peakSeasonRate) TableName() string { return "peak_season_rates" }

func (r peakSeasonRate) toDomain() domain.PeakSeasonRate {
	return domain.PeakSeasonRate{
		ID:              r.ID,
		RoomID:          r.RoomID,
		PropertyID:      r.PropertyID,
		StartDate:       r.StartDate.UTC(),
		EndDate:         r.EndDate.UTC(),
		AdjustmentType:  domain.AdjustmentType(r.AdjustmentType),
		AdjustmentValue: r.AdjustmentValue,
	}
}
