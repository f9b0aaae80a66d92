package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// RegisterRequest represents a sign-up request.
type RegisterRequest struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Validate checks required fields and that both passwords agree.
func (r *RegisterRequest) Validate() error {
	if err := requireFields(
		field{"username", r.Username},
		field{"password", r.Password},
		field{"passwordConfirmation", r.PasswordConfirmation},
	); err != nil {
		return err
	}

	if r.Password != r.PasswordConfirmation {
		return domain.NewInvalidParamError("passwordConfirmation", domain.ErrPasswordMismatch)
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *LoginRequest) Validate() error {
	return requireFields(
		field{"username", r.Username},
		field{"password", r.Password},
	)
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// CreateTransactionRequest represents a transfer to another user. Value
// accepts a JSON number or a decimal string.
type CreateTransactionRequest struct {
	RecipientUsername string           `json:"recipientUsername"`
	Value             *decimal.Decimal `json:"value"`
}

// Validate checks required fields. Range checks belong to the transfer
// use case.
func (r *CreateTransactionRequest) Validate() error {
	if err := requireFields(field{"recipientUsername", r.RecipientUsername}); err != nil {
		return err
	}

	if r.Value == nil {
		return domain.NewInvalidParamError("value", domain.ErrMissingParam)
	}

	return nil
}

// ToUseCaseInput converts to use case input on behalf of token.
func (r *CreateTransactionRequest) ToUseCaseInput(token string) usecase.CreateTransferInput {
	input := usecase.CreateTransferInput{
		Token:             token,
		RecipientUsername: r.RecipientUsername,
	}
	if r.Value != nil {
		input.Value = *r.Value
	}

	return input
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.NewInvalidParamError(f.name, domain.ErrMissingParam)
		}
	}

	return nil
}
