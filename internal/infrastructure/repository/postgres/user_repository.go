package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

const userColumns = `id, username, password, organization, matches, wins, losses, win_matches,
loss_matches, mvp_count, score_for, score_against, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, record user.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	const insertUserQuery = `
INSERT INTO users (username, password, organization, matches, wins, losses, win_matches,
    loss_matches, mvp_count, score_for, score_against, created_at)
VALUES (:username, :password, :organization, :matches, :wins, :losses, :win_matches,
    :loss_matches, :mvp_count, :score_for, :score_against, :created_at)`

	query, args, err := sqlx.Named(insertUserQuery, recordArgs(record))
	if err != nil {
		return fmt.Errorf("bind insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", user.ErrUsernameTaken, record.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, username string) (user.Record, bool, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if isNotFound(err) {
			return user.Record{}, false, nil
		}
		return user.Record{}, false, fmt.Errorf("get user by username: %w", err)
	}
	return row.toRecord(), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.Record, error) {
	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	out := make([]user.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, record user.Record) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	const updateUserQuery = `
UPDATE users SET
    password = :password,
    organization = :organization,
    matches = :matches,
    wins = :wins,
    losses = :losses,
    win_matches = :win_matches,
    loss_matches = :loss_matches,
    mvp_count = :mvp_count,
    score_for = :score_for,
    score_against = :score_against,
    updated_at = NOW()
WHERE username = :username`

	query, args, err := sqlx.Named(updateUserQuery, recordArgs(record))
	if err != nil {
		return false, fmt.Errorf("bind update user query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read updated rows: %w", err)
	}
	return affected > 0, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	query := r.db.Rebind(`DELETE FROM users WHERE username = ?`)
	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
