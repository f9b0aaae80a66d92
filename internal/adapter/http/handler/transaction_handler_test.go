package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

func noHistory(t *testing.T) historyServiceFunc {
	return func(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
		t.Fatalf("history should not be reached")
		return nil, nil
	}
}

func noTransfer(t *testing.T) transferServiceFunc {
	return func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
		t.Fatalf("transfer should not be reached")
		return nil, nil
	}
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	created := time.Date(2022, 10, 30, 12, 0, 0, 0, time.UTC)

	var captured usecase.CreateTransferInput
	h := NewTransactionHandler(transferServiceFunc(func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
		captured = input
		return &domain.Transaction{
			ID:                "tx-1",
			DebitedAccountID:  "a1",
			CreditedAccountID: "a2",
			Value:             input.Value,
			CreatedAt:         created,
		}, nil
	}), noHistory(t))

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/v1/transactions", `{"recipientUsername":"bob","value":15.25}`, "tok"))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "tok", captured.Token)
	assert.Equal(t, "bob", captured.RecipientUsername)
	assert.True(t, decimal.RequireFromString("15.25").Equal(captured.Value))

	var resp dto.TransactionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "tx-1", resp.ID)
	assert.Equal(t, "15.25", resp.Value)
	assert.True(t, created.Equal(resp.CreatedAt))
}

func TestTransactionHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantParam  string
	}{
		{"malformed body", `{`, nil, http.StatusBadRequest, ""},
		{"missing recipient", `{"value":1}`, nil, http.StatusBadRequest, "recipientUsername"},
		{"missing value", `{"recipientUsername":"bob"}`, nil, http.StatusBadRequest, "value"},
		{"insufficient balance", `{"recipientUsername":"bob","value":500}`, domain.NewInvalidParamError("value", domain.ErrInsufficientBalance), http.StatusBadRequest, "value"},
		{"unknown recipient", `{"recipientUsername":"zed","value":1}`, domain.NewInvalidParamError("recipientUsername", domain.ErrRecipientNotFound), http.StatusBadRequest, "recipientUsername"},
		{"invalid token", `{"recipientUsername":"bob","value":1}`, domain.ErrInvalidToken, http.StatusUnauthorized, ""},
		{"ledger fault", `{"recipientUsername":"bob","value":1}`, domain.NewServerError("create transaction", errors.New("boom")), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(transferServiceFunc(func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
				if tt.err == nil {
					t.Fatalf("use case should not be reached")
				}
				return nil, tt.err
			}), noHistory(t))

			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest(http.MethodPost, "/api/v1/transactions", tt.body, "tok"))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantParam != "" {
				var resp dto.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantParam, resp.Param)
			}
		})
	}
}

func TestTransactionHandler_List(t *testing.T) {
	day := time.Date(2022, 10, 30, 0, 0, 0, 0, time.UTC)

	var gotFilter domain.TransactionFilter
	h := NewTransactionHandler(noTransfer(t), historyServiceFunc(func(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
		gotFilter = filter
		return []*domain.Transaction{
			{ID: "tx-1", DebitedAccountID: "a2", CreditedAccountID: "a1", Value: decimal.NewFromInt(5), CreatedAt: day.Add(time.Hour)},
		}, nil
	}))

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/v1/transactions?date=2022-10-30&type=cash-in", "", "tok"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, gotFilter.Date)
	assert.True(t, day.Equal(*gotFilter.Date))
	assert.Equal(t, domain.CashIn, gotFilter.Type)

	var resp []dto.TransactionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "5.00", resp[0].Value)
}

func TestTransactionHandler_List_EmptyIsArray(t *testing.T) {
	h := NewTransactionHandler(noTransfer(t), historyServiceFunc(func(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
		return []*domain.Transaction{}, nil
	}))

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/v1/transactions", "", "tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTransactionHandler_List_InvalidFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantParam string
	}{
		{"bad date", "?date=30/10/2022", "date"},
		{"bad type", "?type=refund", "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(noTransfer(t), noHistory(t))

			rec := httptest.NewRecorder()
			h.List(rec, authedRequest(http.MethodGet, "/api/v1/transactions"+tt.query, "", "tok"))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantParam, resp.Param)
		})
	}
}
