package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

func TestLedgerHandler_CheckConsistency(t *testing.T) {
	tests := []struct {
		name           string
		report         *usecase.ConsistencyReport
		err            error
		wantStatus     int
		wantConsistent bool
	}{
		{
			name:           "consistent",
			report:         &usecase.ConsistencyReport{Accounts: 2, TotalBalance: decimal.NewFromInt(200), Expected: decimal.NewFromInt(200), Consistent: true},
			wantStatus:     http.StatusOK,
			wantConsistent: true,
		},
		{
			name:       "inconsistent",
			report:     &usecase.ConsistencyReport{Accounts: 2, TotalBalance: decimal.NewFromInt(199), Expected: decimal.NewFromInt(200)},
			err:        domain.ErrLedgerInconsistent,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "store failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLedgerHandler(ledgerServiceFunc(func(ctx context.Context) (*usecase.ConsistencyReport, error) {
				return tt.report, tt.err
			}))

			rec := httptest.NewRecorder()
			h.CheckConsistency(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil))

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.report != nil {
				var resp dto.ConsistencyResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantConsistent, resp.Consistent)
				assert.Equal(t, tt.report.Accounts, resp.Accounts)
			}
		})
	}
}
