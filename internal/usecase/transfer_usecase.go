package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// Outcome labels reported to the TransferRecorder.
const (
	outcomeUnauthorized      = "unauthorized"
	outcomeRecipientNotFound = "recipient_not_found"
	outcomeSameAccount       = "same_account"
	outcomeInvalidAmount     = "invalid_amount"
	outcomeInsufficient      = "insufficient_balance"
	outcomeServerError       = "server_error"
)

// TransferUseCase executes funds transfers between users.
type TransferUseCase struct {
	resolver accountResolver
	users    UserDirectory
	ledger   TransactionRepository
	logger   zerolog.Logger
	recorder TransferRecorder
	timeout  time.Duration
}

// TransferOption configures a TransferUseCase.
type TransferOption func(*TransferUseCase)

// WithTransferLogger sets the logger.
func WithTransferLogger(logger zerolog.Logger) TransferOption {
	return func(uc *TransferUseCase) {
		uc.logger = logger
	}
}

// WithTransferRecorder sets the metrics recorder.
func WithTransferRecorder(recorder TransferRecorder) TransferOption {
	return func(uc *TransferUseCase) {
		if recorder != nil {
			uc.recorder = recorder
		}
	}
}

// WithTransferTimeout bounds a whole transfer. Zero disables the bound.
func WithTransferTimeout(timeout time.Duration) TransferOption {
	return func(uc *TransferUseCase) {
		uc.timeout = timeout
	}
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	tokens TokenVerifier,
	accounts AccountRepository,
	users UserDirectory,
	ledger TransactionRepository,
	opts ...TransferOption,
) *TransferUseCase {
	uc := &TransferUseCase{
		resolver: accountResolver{tokens: tokens, accounts: accounts},
		users:    users,
		ledger:   ledger,
		logger:   zerolog.Nop(),
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	Token             string
	RecipientUsername string
	Value             decimal.Decimal
}

// Execute validates and applies one transfer. Errors are one of
// domain.ErrUnauthorized, *domain.InvalidParamError or
// *domain.ServerError.
func (uc *TransferUseCase) Execute(ctx context.Context, input CreateTransferInput) (*domain.Transaction, error) {
	start := time.Now()

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	tx, err := uc.execute(ctx, input)
	if err != nil {
		reason := failureReason(err)
		uc.recorder.TransferFailed(reason)

		event := uc.logger.Warn()
		if reason == outcomeServerError {
			event = uc.logger.Error()
		}
		event.Err(err).
			Str("recipient", input.RecipientUsername).
			Str("value", input.Value.String()).
			Str("reason", reason).
			Msg("transfer rejected")

		return nil, err
	}

	elapsed := time.Since(start)
	uc.recorder.TransferSucceeded(tx.Value, elapsed)
	uc.logger.Info().
		Str("transaction_id", tx.ID).
		Str("debited_account_id", tx.DebitedAccountID).
		Str("credited_account_id", tx.CreditedAccountID).
		Str("value", tx.Value.String()).
		Dur("duration", elapsed).
		Msg("transfer completed")

	return tx, nil
}

func (uc *TransferUseCase) execute(ctx context.Context, input CreateTransferInput) (*domain.Transaction, error) {
	// 1-2. Token, then the sender's account
	sender, err := uc.resolver.resolve(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	// 3-4. Recipient user, then the recipient's account
	recipient, err := uc.resolveRecipient(ctx, input.RecipientUsername)
	if err != nil {
		return nil, err
	}

	// 5. No self transfers
	if sender.ID == recipient.ID {
		return nil, domain.NewInvalidParamError("recipientUsername", domain.ErrSameAccount)
	}

	// 6. Balance pre-check, repeated inside the ledger's atomic unit
	if err := sender.ValidateDebit(input.Value); err != nil {
		return nil, domain.NewInvalidParamError("value", err)
	}

	// 7-8. Atomic debit, credit and ledger insert
	tx, err := uc.ledger.Create(ctx, sender.ID, recipient.ID, input.Value)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, domain.NewInvalidParamError("value", domain.ErrInsufficientBalance)
		}

		return nil, domain.NewServerError("create transaction", err)
	}

	return tx, nil
}

func (uc *TransferUseCase) resolveRecipient(ctx context.Context, username string) (*domain.Account, error) {
	notFound := domain.NewInvalidParamError("recipientUsername", domain.ErrRecipientNotFound)

	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, notFound
		}

		return nil, domain.NewServerError("find recipient", err)
	}

	account, err := uc.resolver.accounts.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, notFound
		}

		return nil, domain.NewServerError("find recipient account", err)
	}

	return account, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return outcomeUnauthorized
	case errors.Is(err, domain.ErrRecipientNotFound):
		return outcomeRecipientNotFound
	case errors.Is(err, domain.ErrSameAccount):
		return outcomeSameAccount
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAmountPrecision):
		return outcomeInvalidAmount
	case errors.Is(err, domain.ErrInsufficientBalance):
		return outcomeInsufficient
	default:
		return outcomeServerError
	}
}
