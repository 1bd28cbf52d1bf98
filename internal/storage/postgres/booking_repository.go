package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BookingRepository stores bookings in Postgres. Every status write is
// conditional on the status the caller read.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const bookingColumns = `
	b.id, b.uid::text, b.user_id, b.room_id, b.check_in, b.check_out, b.total_price::text,
	b.fullname, b.email, b.phone, b.status, b.payment_method, b.payment_proof,
	b.cancellation_reason, b.transaction_id, b.paid_at, b.payment_deadline,
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b      domain.Booking
		total  string
		status string
		paidAt *time.Time
	)
	err := row.Scan(
		&b.ID, &b.UID, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &total,
		&b.Fullname, &b.Email, &b.Phone, &status, &b.PaymentMethod, &b.PaymentProof,
		&b.CancellationReason, &b.TransactionID, &paidAt, &b.PaymentDeadline,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	price, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("parse total_price %q: %w", total, err)
	}
	b.TotalPrice = price
	b.Status = domain.BookingStatus(status)
	b.CheckIn = b.CheckIn.UTC()
	b.CheckOut = b.CheckOut.UTC()
	b.PaymentDeadline = b.PaymentDeadline.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	if paidAt != nil {
		at := paidAt.UTC()
		b.PaidAt = &at
	}
	return b, nil
}

func (r *BookingRepository) getOne(ctx context.Context, query string, args ...any) (domain.Booking, error) {
	b, err := scanBooking(conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

func (r *BookingRepository) GetByUID(ctx context.Context, uid string) (domain.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.uid = $1`, uid)
}

func (r *BookingRepository) GetByUIDForGuest(ctx context.Context, uid string, userID int64) (domain.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.uid = $1 AND b.user_id = $2`, uid, userID)
}

func (r *BookingRepository) GetByUIDForTenant(ctx context.Context, uid string, tenantID int64) (domain.Booking, error) {
	const query = `
SELECT ` + bookingColumns + `
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN properties p ON p.id = r.property_id
WHERE b.uid = $1 AND p.tenant_id = $2`
	return r.getOne(ctx, query, uid, tenantID)
}

func (r *BookingRepository) ListForGuest(ctx context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	const query = `
SELECT ` + bookingColumns + `
FROM bookings b
WHERE b.user_id = $1 AND ($2 = '' OR b.status = $2)
ORDER BY b.created_at DESC, b.id DESC`
	return r.list(ctx, query, userID, string(status))
}

func (r *BookingRepository) ListForTenant(ctx context.Context, tenantID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	const query = `
SELECT ` + bookingColumns + `
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN properties p ON p.id = r.property_id
WHERE p.tenant_id = $1 AND ($2 = '' OR b.status = $2)
ORDER BY b.created_at DESC, b.id DESC`
	return r.list(ctx, query, tenantID, string(status))
}

// LockRoom takes a row lock on the room for the rest of the transaction,
// serializing bookings of the same room.
func (r *BookingRepository) LockRoom(ctx context.Context, roomID int64) error {
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRoomNotFound
		}
		return fmt.Errorf("lock room: %w", err)
	}
	return nil
}

// HasOverlap reports whether an active booking of the room intersects
// [checkIn, checkOut). Unpaid bookings past their deadline no longer count.
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut, now time.Time) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE room_id = $1
	  AND check_in < $3
	  AND check_out > $2
	  AND (status IN ('processing', 'confirmed')
	       OR (status = 'pending_payment' AND payment_deadline >= $4))
)`
	var taken bool
	if err := conn(ctx, r.pool).QueryRow(ctx, query, roomID, checkIn, checkOut, now).Scan(&taken); err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return taken, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	const stmt = `
INSERT INTO bookings (
	uid, user_id, room_id, check_in, check_out, total_price, fullname, email, phone,
	status, payment_deadline, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, stmt,
		b.UID, b.UserID, b.RoomID, b.CheckIn, b.CheckOut, b.TotalPrice.String(),
		b.Fullname, b.Email, b.Phone, string(b.Status), b.PaymentDeadline, b.CreatedAt, b.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("create booking: duplicate uid %s: %w", b.UID, err)
		}
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return id, nil
}

// UpdateTransition writes the mutable columns of b if the row still holds
// from. Price, dates and ownership are never rewritten.
func (r *BookingRepository) UpdateTransition(ctx context.Context, b domain.Booking, from domain.BookingStatus) (bool, error) {
	const stmt = `
UPDATE bookings
SET status = $3,
    payment_method = $4,
    payment_proof = $5,
    cancellation_reason = $6,
    transaction_id = $7,
    paid_at = $8,
    updated_at = $9
WHERE uid = $1 AND status = $2`

	tag, err := conn(ctx, r.pool).Exec(ctx, stmt,
		b.UID, string(from), string(b.Status), b.PaymentMethod, b.PaymentProof,
		b.CancellationReason, b.TransactionID, b.PaidAt, b.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update booking %s: %w", b.UID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `
UPDATE bookings
SET status = 'cancelled', updated_at = $1
WHERE status = 'pending_payment' AND payment_deadline < $1`

	tag, err := conn(ctx, r.pool).Exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("cancel expired bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) ListCompletable(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	const query = `
SELECT ` + bookingColumns + `
FROM bookings b
WHERE b.status = 'confirmed' AND b.check_out < $1
ORDER BY b.check_out, b.id`
	return r.list(ctx, query, cutoff)
}
