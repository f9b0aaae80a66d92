package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (id, balance, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateAccountParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.Exec(ctx, createAccount,
		arg.ID,
		arg.Balance,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const creditAccount = `-- name: CreditAccount :execrows
UPDATE accounts
SET balance = balance + $2, version = version + 1, updated_at = $3
WHERE id = $1
`

type CreditAccountParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreditAccount(ctx context.Context, arg CreditAccountParams) (int64, error) {
	result, err := q.db.Exec(ctx, creditAccount, arg.ID, arg.Balance, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const debitAccount = `-- name: DebitAccount :execrows
UPDATE accounts
SET balance = balance - $2, version = version + 1, updated_at = $3
WHERE id = $1 AND balance >= $2
`

type DebitAccountParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) DebitAccount(ctx context.Context, arg DebitAccountParams) (int64, error) {
	result, err := q.db.Exec(ctx, debitAccount, arg.ID, arg.Balance, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getAccountByUserID = `-- name: GetAccountByUserID :one
SELECT a.id, a.balance, a.version, a.created_at, a.updated_at
FROM accounts a
JOIN users u ON u.account_id = a.id
WHERE u.id = $1
`

func (q *Queries) GetAccountByUserID(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByUserID, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Balance,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const lockAccountsForUpdate = `-- name: LockAccountsForUpdate :many
SELECT id FROM accounts WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE
`

func (q *Queries) LockAccountsForUpdate(ctx context.Context, dollar_1 []string) ([]string, error) {
	rows, err := q.db.Query(ctx, lockAccountsForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumBalances = `-- name: SumBalances :one
SELECT COALESCE(SUM(balance), 0)::numeric AS total, COUNT(*) AS accounts FROM accounts
`

type SumBalancesRow struct {
	Total    pgtype.Numeric `json:"total"`
	Accounts int64          `json:"accounts"`
}

func (q *Queries) SumBalances(ctx context.Context) (SumBalancesRow, error) {
	row := q.db.QueryRow(ctx, sumBalances)
	var i SumBalancesRow
	err := row.Scan(&i.Total, &i.Accounts)
	return i, err
}
