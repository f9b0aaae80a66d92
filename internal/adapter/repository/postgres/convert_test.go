package postgres

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/domain"
)

func TestDecimalToNumeric_KeepsCents(t *testing.T) {
	d := decimal.RequireFromString("127.70")
	n := decimalToNumeric(d)

	assert.True(t, d.Equal(numericToDecimal(n)))
	assert.True(t, numericToDecimal(n).Equal(decimal.RequireFromString("127.7")))
}

func TestNumericToDecimal_NullIsZero(t *testing.T) {
	assert.True(t, numericToDecimal(decimalToNumeric(decimal.Zero)).IsZero())
	assert.True(t, numericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestMoneyColumnsUseMoneyScale(t *testing.T) {
	files, err := filepath.Glob("../../../infrastructure/postgres/migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	numeric := regexp.MustCompile(`NUMERIC\(\s*(\d+)\s*,\s*(\d+)\s*\)`)
	var seen int
	for _, f := range files {
		body, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, m := range numeric.FindAllStringSubmatch(string(body), -1) {
			seen++
			scale, err := strconv.Atoi(m[2])
			require.NoError(t, err)
			assert.Equal(t, domain.MoneyPlaces, scale, "%s: %s", filepath.Base(f), m[0])
		}
	}
	assert.Equal(t, 2, seen, "balance and value columns")
}
