package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
)

const bookColumns = `
	id, title, author, isbn, category, tags, cover_url,
	total_copies, available_copies, version, created_at, updated_at
`

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var book model.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Category,
		&book.Tags,
		&book.CoverURL,
		&book.TotalCopies,
		&book.AvailableCopies,
		&book.Version,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, isbn, category, tags, cover_url,
			total_copies, available_copies, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Category,
		book.Tags,
		book.CoverURL,
		book.TotalCopies,
		book.AvailableCopies,
		book.Version,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrISBNExists
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return book, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	queryBuilder := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM books WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.Category != nil {
		clause := fmt.Sprintf(" AND category = $%d", argCount)
		queryBuilder += clause
		countQuery += clause
		args = append(args, *filter.Category)
		argCount++
	}

	if filter.Search != nil {
		clause := fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR isbn = $%d)", argCount, argCount+1, argCount+2)
		queryBuilder += clause
		countQuery += clause
		pattern := "%" + *filter.Search + "%"
		args = append(args, pattern, pattern, *filter.Search)
		argCount += 3
	}

	if filter.AvailableOnly {
		queryBuilder += " AND available_copies > 0"
		countQuery += " AND available_copies > 0"
	}

	var totalItems int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	queryBuilder += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, totalItems, nil
}

// Update implements RepositoryInterface.Update
func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET
			title = $2,
			author = $3,
			category = $4,
			tags = $5,
			cover_url = $6,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING version, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Category,
		book.Tags,
		book.CoverURL,
	).Scan(&book.Version, &book.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewBookNotFoundError(book.ID)
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

// UpdateCopyCounts implements RepositoryInterface.UpdateCopyCounts.
// total_copies moves by totalDelta; available_copies follows by the same
// delta and is clamped into [0, new total].
func (r *postgresRepository) UpdateCopyCounts(ctx context.Context, id uuid.UUID, totalDelta int) (*model.Book, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockQuery := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`

	book, err := scanBook(tx.QueryRow(ctx, lockQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to lock book: %w", err)
	}

	newTotal := book.TotalCopies + totalDelta
	if newTotal < 0 {
		return nil, fmt.Errorf("%w: total would become %d", model.ErrInvalidCopyCounts, newTotal)
	}

	newAvailable := book.AvailableCopies + totalDelta
	if newAvailable < 0 {
		newAvailable = 0
	}
	if newAvailable > newTotal {
		newAvailable = newTotal
	}

	updateQuery := `
		UPDATE books
		SET
			total_copies = $2,
			available_copies = $3,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_copies, available_copies, version, updated_at
	`

	err = tx.QueryRow(ctx, updateQuery, id, newTotal, newAvailable).Scan(
		&book.TotalCopies,
		&book.AvailableCopies,
		&book.Version,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update copy counts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return book, nil
}

// Delete implements RepositoryInterface.Delete
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewBookNotFoundError(id)
	}

	return nil
}

// ReserveCopyWithTx implements RepositoryInterface.ReserveCopyWithTx
func (r *postgresRepository) ReserveCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*model.Book, error) {
	// Lock the row so concurrent issue requests against the last copy
	// serialize on it instead of both succeeding.
	lockQuery := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`

	book, err := scanBook(tx.QueryRow(ctx, lockQuery, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(bookID)
		}
		return nil, fmt.Errorf("failed to lock book: %w", err)
	}

	if book.AvailableCopies <= 0 {
		return nil, fmt.Errorf("%w: book_id=%s", model.ErrNoCopiesAvailable, bookID)
	}

	updateQuery := `
		UPDATE books
		SET
			available_copies = available_copies - 1,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING available_copies, version, updated_at
	`

	err = tx.QueryRow(ctx, updateQuery, bookID).Scan(
		&book.AvailableCopies,
		&book.Version,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve copy: %w", err)
	}

	return book, nil
}

// ReleaseCopyWithTx implements RepositoryInterface.ReleaseCopyWithTx
func (r *postgresRepository) ReleaseCopyWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*model.Book, error) {
	lockQuery := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`

	book, err := scanBook(tx.QueryRow(ctx, lockQuery, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(bookID)
		}
		return nil, fmt.Errorf("failed to lock book: %w", err)
	}

	if book.AvailableCopies >= book.TotalCopies {
		// The return flow already rejects double returns, so hitting the
		// clamp means copy counts were adjusted while this copy was out.
		log.Warn().
			Str("book_id", bookID.String()).
			Int("total_copies", book.TotalCopies).
			Int("available_copies", book.AvailableCopies).
			Msg("Release clamped: available already at total")
		return book, nil
	}

	updateQuery := `
		UPDATE books
		SET
			available_copies = available_copies + 1,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING available_copies, version, updated_at
	`

	err = tx.QueryRow(ctx, updateQuery, bookID).Scan(
		&book.AvailableCopies,
		&book.Version,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to release copy: %w", err)
	}

	return book, nil
}
