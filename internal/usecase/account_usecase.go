package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// accountResolver is the read path shared by every token-authenticated
// use case: verify the token, then load the caller's account.
type accountResolver struct {
	tokens   TokenVerifier
	accounts AccountRepository
}

// resolve returns domain.ErrUnauthorized when the token is rejected or
// names a user without an account, and a *domain.ServerError when the
// store fails.
func (r accountResolver) resolve(ctx context.Context, token string) (*domain.Account, error) {
	identity, err := r.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	account, err := r.accounts.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthorized
		}

		return nil, domain.NewServerError("find sender account", err)
	}

	return account, nil
}

// BalanceUseCase answers balance queries.
type BalanceUseCase struct {
	resolver accountResolver
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(tokens TokenVerifier, accounts AccountRepository) *BalanceUseCase {
	return &BalanceUseCase{
		resolver: accountResolver{tokens: tokens, accounts: accounts},
	}
}

// Execute returns the balance of the account owned by the token's user.
func (uc *BalanceUseCase) Execute(ctx context.Context, token string) (decimal.Decimal, error) {
	account, err := uc.resolver.resolve(ctx, token)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}
