package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/member/model"
)

const memberColumns = `id, user_id, membership_number, phone, status, borrowing_limit, created_at, updated_at`

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

func scanMember(row pgx.Row) (*model.Member, error) {
	var member model.Member
	err := row.Scan(
		&member.ID,
		&member.UserID,
		&member.MembershipNumber,
		&member.Phone,
		&member.Status,
		&member.BorrowingLimit,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, member *model.Member) error {
	query := `
		INSERT INTO members (
			id, user_id, membership_number, phone, status, borrowing_limit, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.UserID,
		member.MembershipNumber,
		member.Phone,
		member.Status,
		member.BorrowingLimit,
		member.CreatedAt,
		member.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if strings.Contains(pgErr.ConstraintName, "user_id") {
				return model.ErrMemberExists
			}
			return model.ErrMembershipNumberExists
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	member, err := scanMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewMemberNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}

	return member, nil
}

// GetByUserID implements RepositoryInterface.GetByUserID
func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE user_id = $1`

	member, err := scanMember(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user_id=%s", model.ErrMemberNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get member by user id: %w", err)
	}

	return member, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListMembersRequest) ([]model.Member, int, error) {
	queryBuilder := `SELECT ` + memberColumns + ` FROM members WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM members WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.Status != nil {
		clause := fmt.Sprintf(" AND status = $%d", argCount)
		queryBuilder += clause
		countQuery += clause
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.Search != nil && *filter.Search != "" {
		clause := fmt.Sprintf(" AND membership_number ILIKE $%d", argCount)
		queryBuilder += clause
		countQuery += clause
		args = append(args, "%"+*filter.Search+"%")
		argCount++
	}

	var totalItems int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	queryBuilder += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, totalItems, nil
}

// Update implements RepositoryInterface.Update
func (r *postgresRepository) Update(ctx context.Context, member *model.Member) error {
	query := `
		UPDATE members
		SET
			phone = $2,
			status = $3,
			borrowing_limit = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		member.ID,
		member.Phone,
		member.Status,
		member.BorrowingLimit,
	).Scan(&member.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewMemberNotFoundError(member.ID)
		}
		return fmt.Errorf("failed to update member: %w", err)
	}

	return nil
}
