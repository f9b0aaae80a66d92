package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iho/cashflow/internal/domain"
)

// UserUseCase handles registration and login.
type UserUseCase struct {
	txManager   TransactionManager
	userRepo    UserRepository
	accountRepo AccountRepository
	hasher      PasswordHasher
	issuer      TokenIssuer
	idGen       IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	idGen IDGenerator,
) *UserUseCase {
	return &UserUseCase{
		txManager:   txManager,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		hasher:      hasher,
		issuer:      issuer,
		idGen:       idGen,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a user together with its funded account.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)

	if err := domain.ValidateUsername(username); err != nil {
		return nil, domain.NewInvalidParamError("username", err)
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, domain.NewInvalidParamError("password", err)
	}

	// Check if user already exists
	_, err := uc.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.NewInvalidParamError("username", domain.ErrUsernameTaken)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, domain.NewServerError("find user", err)
	}

	hashedPassword, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, domain.NewServerError("hash password", err)
	}

	now := time.Now().UTC()
	account := domain.NewAccount(uc.idGen.Generate(), now)
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       username,
		HashedPassword: hashedPassword,
		AccountID:      account.ID,
		CreatedAt:      now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, domain.NewServerError("begin registration", err)
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, domain.NewServerError("create account", err)
	}

	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		// Lost a race against a concurrent registration of the same name
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.NewInvalidParamError("username", domain.ErrUsernameTaken)
		}

		return nil, domain.NewServerError("create user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewServerError("commit registration", err)
	}

	// Don't return hashed password
	user.HashedPassword = ""
	return user, nil
}

// LoginInput represents login credentials.
type LoginInput struct {
	Username string
	Password string
}

// Login checks credentials and returns a bearer token.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (string, error) {
	invalid := domain.NewInvalidParamError("username", domain.ErrInvalidCredential)

	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", invalid
		}

		return "", domain.NewServerError("find user", err)
	}

	if err := uc.hasher.Compare(user.HashedPassword, input.Password); err != nil {
		return "", invalid
	}

	token, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return "", domain.NewServerError("issue token", err)
	}

	return token, nil
}
