package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Transaction struct {
	ID                string             `json:"id"`
	DebitedAccountID  string             `json:"debited_account_id"`
	CreditedAccountID string             `json:"credited_account_id"`
	Value             pgtype.Numeric     `json:"value"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID             string             `json:"id"`
	Username       string             `json:"username"`
	HashedPassword string             `json:"hashed_password"`
	AccountID      string             `json:"account_id"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}
