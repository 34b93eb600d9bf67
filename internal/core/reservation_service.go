package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// lockWait bounds how long a reservation waits for another reservation on
// the same item before giving up with ErrUnavailable.
var lockWait = "3s"

// ReserveInput is one reservation request. Exactly one of Reason /
// Destination is meaningful, selected by Channel; Date is the channel date
// (sale_date, date_logged, or date_sent) in YYYY-MM-DD form.
type ReserveInput struct {
	ItemID      int
	Quantity    int
	Channel     OutflowChannel
	Date        string
	Reason      WasteReason // waste only
	Destination Destination // redistribution only
}

// ReservationService is the single authoritative path for removing stock.
// Every outflow channel — sale, waste, redistribution — claims quantity
// through Reserve; nothing else decrements items.quantity.
type ReservationService interface {
	// Reserve atomically checks availability, decrements the item's
	// quantity, and appends the channel's ledger record. The check and the
	// write happen under a row lock on the item, so two concurrent calls
	// against the same item can never together drive quantity below zero.
	//
	// Errors: ErrItemNotFound, ErrInsufficientStock (quantity unchanged in
	// both cases), ErrUnavailable when the row lock is not acquired within
	// the bounded wait, *ValidationError before storage is touched.
	Reserve(ctx context.Context, input ReserveInput) (*OutflowRecord, error)
}

type reservationService struct {
	pool *pgxpool.Pool
}

// NewReservationService constructs a ReservationService backed by PostgreSQL.
func NewReservationService(pool *pgxpool.Pool) ReservationService {
	return &reservationService{pool: pool}
}

// validate rejects malformed input before any transaction is opened.
func (in ReserveInput) validate() (time.Time, error) {
	if !in.Channel.Valid() {
		return time.Time{}, validationErr("channel", fmt.Sprintf("unrecognized channel %q", in.Channel))
	}
	if in.Quantity <= 0 {
		return time.Time{}, validationErr("quantity", "must be a positive integer")
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return time.Time{}, validationErr("date", "must be YYYY-MM-DD")
	}
	switch in.Channel {
	case ChannelWaste:
		if !in.Reason.Valid() {
			return time.Time{}, validationErr("reason", fmt.Sprintf("unrecognized waste reason %q", in.Reason))
		}
	case ChannelRedistribution:
		if !in.Destination.Valid() {
			return time.Time{}, validationErr("destination", fmt.Sprintf("unrecognized destination %q", in.Destination))
		}
	}
	return date, nil
}

func (s *reservationService) Reserve(ctx context.Context, input ReserveInput) (*OutflowRecord, error) {
	date, err := input.validate()
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reservation: %w", err)
	}
	defer tx.Rollback(ctx)

	// Bound the wait on the row lock so a caller stuck behind a slow
	// reservation gets ErrUnavailable instead of hanging.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockWait)); err != nil {
		return nil, fmt.Errorf("set lock timeout: %w", err)
	}

	// Lock the item row. The lock serializes every check-then-decrement
	// sequence on this item; reservations against other items proceed
	// independently.
	var current int
	err = tx.QueryRow(ctx,
		"SELECT quantity FROM items WHERE item_id = $1 FOR UPDATE",
		input.ItemID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reserve %d units of item %d: %w", input.Quantity, input.ItemID, ErrItemNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "55P03" { // lock_not_available
			return nil, fmt.Errorf("reserve item %d: %w", input.ItemID, ErrUnavailable)
		}
		return nil, fmt.Errorf("lock item %d: %w", input.ItemID, err)
	}

	if current < input.Quantity {
		return nil, fmt.Errorf("reserve %d units of item %d, %d on hand: %w",
			input.Quantity, input.ItemID, current, ErrInsufficientStock)
	}

	record := &OutflowRecord{
		Channel:  input.Channel,
		ItemID:   input.ItemID,
		Quantity: input.Quantity,
		Date:     date,
	}

	switch input.Channel {
	case ChannelSale:
		err = tx.QueryRow(ctx, `
			INSERT INTO sales (item_id, quantity_sold, sale_date)
			VALUES ($1, $2, $3)
			RETURNING sale_id`,
			input.ItemID, input.Quantity, date,
		).Scan(&record.ID)
	case ChannelWaste:
		record.Reason = &input.Reason
		err = tx.QueryRow(ctx, `
			INSERT INTO waste_log (item_id, quantity_wasted, reason, date_logged)
			VALUES ($1, $2, $3, $4)
			RETURNING waste_id`,
			input.ItemID, input.Quantity, input.Reason, date,
		).Scan(&record.ID)
	case ChannelRedistribution:
		record.Destination = &input.Destination
		err = tx.QueryRow(ctx, `
			INSERT INTO redistribution (item_id, quantity, destination, date_sent)
			VALUES ($1, $2, $3, $4)
			RETURNING redistribution_id`,
			input.ItemID, input.Quantity, input.Destination, date,
		).Scan(&record.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("append %s record for item %d: %w", input.Channel, input.ItemID, err)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE items SET quantity = quantity - $1, updated_at = NOW() WHERE item_id = $2",
		input.Quantity, input.ItemID,
	); err != nil {
		return nil, fmt.Errorf("decrement item %d: %w", input.ItemID, err)
	}

	// Single commit: ledger record and quantity decrement land together or
	// not at all.
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reservation for item %d: %w", input.ItemID, err)
	}
	return record, nil
}
