package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :exec
INSERT INTO users (id, username, hashed_password, account_id, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateUserParams struct {
	ID             string             `json:"id"`
	Username       string             `json:"username"`
	HashedPassword string             `json:"hashed_password"`
	AccountID      string             `json:"account_id"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx, createUser,
		arg.ID,
		arg.Username,
		arg.HashedPassword,
		arg.AccountID,
		arg.CreatedAt,
	)
	return err
}

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT id, username, hashed_password, account_id, created_at FROM users WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.HashedPassword,
		&i.AccountID,
		&i.CreatedAt,
	)
	return i, err
}
