package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// sequence names the table and parent column of an ordered collection
type sequence struct {
	table  string
	parent string
}

var (
	listSequence = sequence{table: "lists", parent: "board_id"}
	cardSequence = sequence{table: "cards", parent: "list_id"}
)

// resequence rewrites positions under parentID densely (position == index).
// When movedID is non-zero that row is placed at index, clamped to the
// sequence bounds; every other row keeps its relative order.
func resequence(ctx context.Context, tx *sql.Tx, seq sequence, parentID, movedID int64, index int) error {
	rows, err := tx.QueryContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE %s = ? AND id != ? ORDER BY position, id`, seq.table, seq.parent),
		parentID, movedID,
	)
	if err != nil {
		return err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if movedID != 0 {
		index = max(0, min(index, len(ids)))
		ids = append(ids[:index], append([]int64{movedID}, ids[index:]...)...)
	}

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf(`UPDATE %s SET position = ? WHERE id = ? AND position != ?`, seq.table))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i, id, i); err != nil {
			return err
		}
	}
	return nil
}

// parseID converts a wire id into a row id
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q: %w", s, ErrInvalidInput)
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
