package counter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ticketCounter is the single row holding the global ticket sequence.
type ticketCounter struct {
	bun.BaseModel `bun:"table:ticket_counter"`

	ID    int64 `bun:"id,pk"`
	Value int64 `bun:"value,notnull"`
}

// Counter issues globally monotonic ticket numbers. The increment runs in a
// transaction so concurrent submissions cannot observe or issue the same
// number.
type Counter struct {
	db *bun.DB
}

// Open connects to the counter database and creates the table and its seed
// row when missing.
func Open(ctx context.Context, dsn string) (*Counter, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open counter db: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*ticketCounter)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create counter table: %w", err)
	}

	seed := ticketCounter{ID: 1, Value: 0}
	if _, err := db.NewInsert().
		Model(&seed).
		Ignore().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed counter: %w", err)
	}

	return &Counter{db: db}, nil
}

// Next increments the counter and returns the new value.
func (c *Counter) Next(ctx context.Context) (int64, error) {
	var next int64
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var row ticketCounter
		if err := tx.NewSelect().
			Model(&row).
			Where("id = ?", 1).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}
		row.Value++
		if _, err := tx.NewUpdate().
			Model(&row).
			Column("value").
			Where("id = ?", 1).
			Exec(ctx); err != nil {
			return err
		}
		next = row.Value
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance ticket counter: %w", err)
	}
	return next, nil
}

// Current reads the last issued ticket number without advancing it.
func (c *Counter) Current(ctx context.Context) (int64, error) {
	var row ticketCounter
	err := c.db.NewSelect().
		Model(&row).
		Where("id = ?", 1).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return 0, err
	}
	return row.Value, nil
}

func (c *Counter) Close() error {
	return c.db.Close()
}
