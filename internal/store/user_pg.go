package store

import (
	"context"
	"errors"

	"smartlibrary/internal/entity"
	"smartlibrary/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password, COALESCE(full_name, ''), role, created_at, updated_at`

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) Create(ctx context.Context, u *entity.User) error {
	const query = `
	INSERT INTO users (id, username, email, password, full_name, role)
	VALUES (gen_random_uuid(), $1, $2, $3, NULLIF($4, ''), $5)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Email, u.Password, u.FullName, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usecase.ErrAlreadyExists
	}
	return err
}

func (r *UserPG) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1 LIMIT 1", username)
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1 LIMIT 1", id)
}

func (r *UserPG) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *UserPG) getOne(ctx context.Context, query string, arg any) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}
