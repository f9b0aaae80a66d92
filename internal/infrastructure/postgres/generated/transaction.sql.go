package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :exec
INSERT INTO transactions (id, debited_account_id, credited_account_id, value, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateTransactionParams struct {
	ID                string             `json:"id"`
	DebitedAccountID  string             `json:"debited_account_id"`
	CreditedAccountID string             `json:"credited_account_id"`
	Value             pgtype.Numeric     `json:"value"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, createTransaction,
		arg.ID,
		arg.DebitedAccountID,
		arg.CreditedAccountID,
		arg.Value,
		arg.CreatedAt,
	)
	return err
}
