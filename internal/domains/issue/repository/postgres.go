package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/issue/model"
)

const issueColumns = `id, user_id, book_id, issue_date, due_date, return_date, status, created_at, updated_at`

const issueDetailQuery = `
	SELECT
		i.id, i.user_id, i.book_id, i.issue_date, i.due_date, i.return_date, i.status, i.created_at, i.updated_at,
		u.name, u.email,
		b.title, b.author, b.isbn
	FROM issues i
	JOIN users u ON u.id = i.user_id
	JOIN books b ON b.id = i.book_id
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

func scanIssue(row pgx.Row) (*model.Issue, error) {
	var issue model.Issue
	err := row.Scan(
		&issue.ID,
		&issue.UserID,
		&issue.BookID,
		&issue.IssueDate,
		&issue.DueDate,
		&issue.ReturnDate,
		&issue.Status,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func scanDetail(row pgx.Row) (*model.Detail, error) {
	var d model.Detail
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.BookID,
		&d.IssueDate,
		&d.DueDate,
		&d.ReturnDate,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.UserName,
		&d.UserEmail,
		&d.BookTitle,
		&d.BookAuthor,
		&d.BookISBN,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// BeginTx implements RepositoryInterface.BeginTx
func (r *postgresRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateWithTx implements RepositoryInterface.CreateWithTx
func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, issue *model.Issue) error {
	query := `
		INSERT INTO issues (
			id, user_id, book_id, issue_date, due_date, return_date, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := tx.Exec(ctx, query,
		issue.ID,
		issue.UserID,
		issue.BookID,
		issue.IssueDate,
		issue.DueDate,
		issue.ReturnDate,
		issue.Status,
		issue.CreatedAt,
		issue.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: user or book missing", model.ErrIssueNotFound)
		}
		return fmt.Errorf("failed to insert issue: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1`

	issue, err := scanIssue(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewIssueNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get issue by id: %w", err)
	}

	return issue, nil
}

// GetByIDForUpdateWithTx implements RepositoryInterface.GetByIDForUpdateWithTx
func (r *postgresRepository) GetByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1 FOR UPDATE`

	issue, err := scanIssue(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewIssueNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to lock issue: %w", err)
	}

	return issue, nil
}

// MarkReturnedWithTx implements RepositoryInterface.MarkReturnedWithTx
func (r *postgresRepository) MarkReturnedWithTx(ctx context.Context, tx pgx.Tx, issue *model.Issue) error {
	query := `
		UPDATE issues
		SET
			return_date = $2,
			status = $3,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := tx.QueryRow(ctx, query,
		issue.ID,
		issue.ReturnDate,
		issue.Status,
	).Scan(&issue.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewIssueNotFoundError(issue.ID)
		}
		return fmt.Errorf("failed to mark issue returned: %w", err)
	}

	return nil
}

// ListByUser implements RepositoryInterface.ListByUser
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE user_id = $1 ORDER BY issue_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues by user: %w", err)
	}
	defer rows.Close()

	var issues []model.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate issues: %w", err)
	}

	return issues, nil
}

// ListAll implements RepositoryInterface.ListAll
func (r *postgresRepository) ListAll(ctx context.Context, filter model.ListIssuesRequest) ([]model.Detail, int, error) {
	queryBuilder := issueDetailQuery + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM issues i WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.Status != nil {
		clause := fmt.Sprintf(" AND i.status = $%d", argCount)
		queryBuilder += clause
		countQuery += clause
		args = append(args, *filter.Status)
		argCount++
	}

	var totalItems int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	queryBuilder += fmt.Sprintf(" ORDER BY i.issue_date DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	var details []model.Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan issue detail: %w", err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate issue details: %w", err)
	}

	return details, totalItems, nil
}

// ListAllForExport implements RepositoryInterface.ListAllForExport
func (r *postgresRepository) ListAllForExport(ctx context.Context) ([]model.Detail, error) {
	rows, err := r.pool.Query(ctx, issueDetailQuery+` ORDER BY i.issue_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues for export: %w", err)
	}
	defer rows.Close()

	var details []model.Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue detail: %w", err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate issue details: %w", err)
	}

	return details, nil
}

// CountActiveByBook implements RepositoryInterface.CountActiveByBook
func (r *postgresRepository) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM issues WHERE book_id = $1 AND status = $2`,
		bookID, model.StatusIssued,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active issues: %w", err)
	}
	return count, nil
}

// CountByStatus implements RepositoryInterface.CountByStatus
func (r *postgresRepository) CountByStatus(ctx context.Context, status model.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM issues WHERE status = $1`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count issues by status: %w", err)
	}
	return count, nil
}
