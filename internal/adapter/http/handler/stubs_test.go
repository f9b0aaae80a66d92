package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

type userServiceStub struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, input usecase.LoginInput) (string, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) Login(ctx context.Context, input usecase.LoginInput) (string, error) {
	return s.loginFn(ctx, input)
}

type balanceServiceFunc func(ctx context.Context, token string) (decimal.Decimal, error)

func (f balanceServiceFunc) Execute(ctx context.Context, token string) (decimal.Decimal, error) {
	return f(ctx, token)
}

type transferServiceFunc func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error)

func (f transferServiceFunc) Execute(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
	return f(ctx, input)
}

type historyServiceFunc func(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error)

func (f historyServiceFunc) Execute(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	return f(ctx, token, filter)
}

type ledgerServiceFunc func(ctx context.Context) (*usecase.ConsistencyReport, error)

func (f ledgerServiceFunc) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return f(ctx)
}

// authedRequest builds a request that already passed middleware.BearerToken.
func authedRequest(method, target, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+token)

	var captured *http.Request
	middleware.BearerToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
	})).ServeHTTP(httptest.NewRecorder(), req)

	return captured
}
