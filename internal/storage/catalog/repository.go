// Package catalog reads the room and peak season reference data that
// property management owns. Booking code never writes these tables.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// rateWindowPadding widens the rate query so rules stored on a different
// calendar offset still reach the per-night filter.
const rateWindowPadding = 24 * time.Hour

// Open connects gorm to Postgres, reporting slow queries through log.
func Open(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return db, nil
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type roomRow struct {
	ID         int64
	PropertyID int64
	TenantID   int64
	Name       string
	BasePrice  decimal.Decimal
}

func (r *Repository) GetRoom(ctx context.Context, roomID int64) (domain.Room, error) {
	var row roomRow
	res := r.db.WithContext(ctx).
		Table("rooms").
		Select("rooms.id, rooms.property_id, properties.tenant_id, rooms.name, rooms.base_price").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("rooms.id = ?", roomID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return domain.Room{}, fmt.Errorf("get room %d: %w", roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return domain.Room{
		ID:         row.ID,
		PropertyID: row.PropertyID,
		TenantID:   row.TenantID,
		Name:       row.Name,
		BasePrice:  row.BasePrice,
	}, nil
}

// ListRates returns rates scoped to the room or its property that may touch
// [from, to), ordered by id.
func (r *Repository) ListRates(ctx context.Context, rm domain.Room, from, to time.Time) ([]domain.PeakSeasonRate, error) {
	var rows []peakSeasonRate
	err := r.db.WithContext(ctx).
		Where("(room_id = ? OR property_id = ?)", rm.ID, rm.PropertyID).
		Where("start_date < ? AND end_date >= ?", to.UTC().Add(rateWindowPadding), from.UTC().Add(-rateWindowPadding)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list rates for room %d: %w", rm.ID, err)
	}

	out := make([]domain.PeakSeasonRate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
