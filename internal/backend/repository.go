package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// Repository persists boards, lists and cards. Every operation is scoped to
// an owner: rows belonging to another owner behave as if they did not exist.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over an opened database
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListUpdate is a partial list update. Nil fields are left unchanged.
type ListUpdate struct {
	Title *string
	Order *int
}

// CardUpdate is a partial card update. Nil fields are left unchanged.
type CardUpdate struct {
	ListID *string
	Order  *int
	Title  *string
}

// ============================================================================
// BOARDS
// ============================================================================

// ListBoards returns the owner's boards in order
func (r *Repository) ListBoards(ctx context.Context, owner string) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, position FROM boards WHERE owner = ? ORDER BY position, id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing boards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	boards := make([]*models.Board, 0)
	for rows.Next() {
		var (
			id    int64
			board models.Board
		)
		if err := rows.Scan(&id, &board.Title, &board.Order); err != nil {
			return nil, fmt.Errorf("error scanning board: %w", err)
		}
		board.ID = types.BoardID(formatID(id))
		boards = append(boards, &board)
	}
	return boards, rows.Err()
}

// CreateBoard appends a board for the owner
func (r *Repository) CreateBoard(ctx context.Context, owner, title string) (*models.Board, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var board *models.Board
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		var position int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM boards WHERE owner = ?`, owner,
		).Scan(&position); err != nil {
			return fmt.Errorf("error counting boards: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO boards (owner, title, position) VALUES (?, ?, ?)`,
			owner, title, position,
		)
		if err != nil {
			return fmt.Errorf("error inserting board: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("error getting last insert ID: %w", err)
		}
		board = &models.Board{ID: types.BoardID(formatID(id)), Title: title, Order: position}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// BoardLists returns the lists of a board in order, each with its cards
func (r *Repository) BoardLists(ctx context.Context, owner, boardID string) ([]*models.List, error) {
	bid, err := parseID(boardID)
	if err != nil {
		return nil, err
	}
	if err := r.ownsBoard(ctx, r.db, owner, bid); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, position FROM lists WHERE board_id = ? ORDER BY position, id`,
		bid,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing lists: %w", err)
	}

	lists := make([]*models.List, 0)
	byID := make(map[int64]*models.List)
	for rows.Next() {
		var (
			id   int64
			list = &models.List{BoardID: types.BoardID(boardID), Cards: []*models.Card{}}
		)
		if err := rows.Scan(&id, &list.Title, &list.Order); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("error scanning list: %w", err)
		}
		list.ID = types.ListID(formatID(id))
		lists = append(lists, list)
		byID[id] = list
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cardRows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.list_id, c.title, c.description, c.position
		FROM cards c
		INNER JOIN lists l ON c.list_id = l.id
		WHERE l.board_id = ?
		ORDER BY c.list_id, c.position, c.id`,
		bid,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing cards: %w", err)
	}
	defer func() { _ = cardRows.Close() }()

	for cardRows.Next() {
		var (
			id, listID int64
			card       models.Card
		)
		if err := cardRows.Scan(&id, &listID, &card.Title, &card.Description, &card.Order); err != nil {
			return nil, fmt.Errorf("error scanning card: %w", err)
		}
		card.ID = types.CardID(formatID(id))
		card.ListID = types.ListID(formatID(listID))
		if list, ok := byID[listID]; ok {
			list.Cards = append(list.Cards, &card)
		}
	}
	return lists, cardRows.Err()
}

// ============================================================================
// LISTS
// ============================================================================

// CreateList inserts a list into a board. Order is taken as a requested
// index; positions stay dense.
func (r *Repository) CreateList(ctx context.Context, owner, boardID, title string, order int) (*models.List, error) {
	bid, err := parseID(boardID)
	if err != nil {
		return nil, err
	}
	title, err = cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var list *models.List
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.ownsBoard(ctx, tx, owner, bid); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO lists (board_id, title, position) VALUES (?, ?, ?)`,
			bid, title, order,
		)
		if err != nil {
			return fmt.Errorf("error inserting list: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("error getting last insert ID: %w", err)
		}
		if err := resequence(ctx, tx, listSequence, bid, id, order); err != nil {
			return fmt.Errorf("error resequencing lists: %w", err)
		}

		list = &models.List{ID: types.ListID(formatID(id)), BoardID: types.BoardID(boardID), Title: title, Cards: []*models.Card{}}
		return tx.QueryRowContext(ctx, `SELECT position FROM lists WHERE id = ?`, id).Scan(&list.Order)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateList renames and/or moves a list within its board
func (r *Repository) UpdateList(ctx context.Context, owner, listID string, upd ListUpdate) error {
	lid, err := parseID(listID)
	if err != nil {
		return err
	}
	var title string
	if upd.Title != nil {
		if title, err = cleanTitle(*upd.Title); err != nil {
			return err
		}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		bid, err := r.listBoard(ctx, tx, owner, lid)
		if err != nil {
			return err
		}
		if upd.Title != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE lists SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				title, lid,
			); err != nil {
				return fmt.Errorf("error updating list %d: %w", lid, err)
			}
		}
		if upd.Order != nil {
			if err := resequence(ctx, tx, listSequence, bid, lid, *upd.Order); err != nil {
				return fmt.Errorf("error resequencing lists: %w", err)
			}
		}
		return nil
	})
}

// DeleteList removes a list and, by cascade, its cards
func (r *Repository) DeleteList(ctx context.Context, owner, listID string) error {
	lid, err := parseID(listID)
	if err != nil {
		return err
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		bid, err := r.listBoard(ctx, tx, owner, lid)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, lid); err != nil {
			return fmt.Errorf("error deleting list %d: %w", lid, err)
		}
		return resequence(ctx, tx, listSequence, bid, 0, 0)
	})
}

// ============================================================================
// CARDS
// ============================================================================

// CreateCard inserts a card into a list at the requested index
func (r *Repository) CreateCard(ctx context.Context, owner, listID, title, description string, order int) (*models.Card, error) {
	lid, err := parseID(listID)
	if err != nil {
		return nil, err
	}
	title, err = cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var card *models.Card
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := r.listBoard(ctx, tx, owner, lid); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO cards (list_id, title, description, position) VALUES (?, ?, ?, ?)`,
			lid, title, description, order,
		)
		if err != nil {
			return fmt.Errorf("error inserting card: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("error getting last insert ID: %w", err)
		}
		if err := resequence(ctx, tx, cardSequence, lid, id, order); err != nil {
			return fmt.Errorf("error resequencing cards: %w", err)
		}

		card = &models.Card{
			ID:          types.CardID(formatID(id)),
			ListID:      types.ListID(listID),
			Title:       title,
			Description: description,
		}
		return tx.QueryRowContext(ctx, `SELECT position FROM cards WHERE id = ?`, id).Scan(&card.Order)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard renames and/or relocates a card. A relocation may move the card
// to another list of the same board; both lists are renumbered densely.
func (r *Repository) UpdateCard(ctx context.Context, owner, cardID string, upd CardUpdate) error {
	cid, err := parseID(cardID)
	if err != nil {
		return err
	}
	var title string
	if upd.Title != nil {
		if title, err = cleanTitle(*upd.Title); err != nil {
			return err
		}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			fromList int64
			position int
			boardID  int64
		)
		err := tx.QueryRowContext(ctx, `
			SELECT c.list_id, c.position, l.board_id
			FROM cards c
			INNER JOIN lists l ON c.list_id = l.id
			INNER JOIN boards b ON l.board_id = b.id
			WHERE c.id = ? AND b.owner = ?`,
			cid, owner,
		).Scan(&fromList, &position, &boardID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("card %d: %w", cid, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("error loading card %d: %w", cid, err)
		}

		if upd.Title != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE cards SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				title, cid,
			); err != nil {
				return fmt.Errorf("error updating card %d: %w", cid, err)
			}
		}

		if upd.ListID == nil && upd.Order == nil {
			return nil
		}

		toList := fromList
		if upd.ListID != nil {
			if toList, err = parseID(*upd.ListID); err != nil {
				return err
			}
			target, err := r.listBoard(ctx, tx, owner, toList)
			if err != nil {
				return err
			}
			if target != boardID {
				return fmt.Errorf("card %d cannot leave board %d: %w", cid, boardID, ErrInvalidInput)
			}
		}
		index := position
		if upd.Order != nil {
			index = *upd.Order
		}

		if toList != fromList {
			if _, err := tx.ExecContext(ctx,
				`UPDATE cards SET list_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				toList, cid,
			); err != nil {
				return fmt.Errorf("error moving card %d: %w", cid, err)
			}
			if err := resequence(ctx, tx, cardSequence, fromList, 0, 0); err != nil {
				return fmt.Errorf("error resequencing cards: %w", err)
			}
		}
		if err := resequence(ctx, tx, cardSequence, toList, cid, index); err != nil {
			return fmt.Errorf("error resequencing cards: %w", err)
		}
		return nil
	})
}

// DeleteCard removes a card and closes the gap in its list
func (r *Repository) DeleteCard(ctx context.Context, owner, cardID string) error {
	cid, err := parseID(cardID)
	if err != nil {
		return err
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var listID int64
		err := tx.QueryRowContext(ctx, `
			SELECT c.list_id
			FROM cards c
			INNER JOIN lists l ON c.list_id = l.id
			INNER JOIN boards b ON l.board_id = b.id
			WHERE c.id = ? AND b.owner = ?`,
			cid, owner,
		).Scan(&listID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("card %d: %w", cid, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("error loading card %d: %w", cid, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, cid); err != nil {
			return fmt.Errorf("error deleting card %d: %w", cid, err)
		}
		return resequence(ctx, tx, cardSequence, listID, 0, 0)
	})
}

// ============================================================================
// OWNERSHIP
// ============================================================================

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) ownsBoard(ctx context.Context, q querier, owner string, boardID int64) error {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM boards WHERE id = ? AND owner = ?`, boardID, owner,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("board %d: %w", boardID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("error loading board %d: %w", boardID, err)
	}
	return nil
}

// listBoard returns the board of an owned list
func (r *Repository) listBoard(ctx context.Context, q querier, owner string, listID int64) (int64, error) {
	var boardID int64
	err := q.QueryRowContext(ctx, `
		SELECT l.board_id
		FROM lists l
		INNER JOIN boards b ON l.board_id = b.id
		WHERE l.id = ? AND b.owner = ?`,
		listID, owner,
	).Scan(&boardID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("list %d: %w", listID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("error loading list %d: %w", listID, err)
	}
	return boardID, nil
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if len(title) > models.MaxTitleLength {
		return "", fmt.Errorf("title exceeds %d characters: %w", models.MaxTitleLength, ErrInvalidInput)
	}
	return title, nil
}
