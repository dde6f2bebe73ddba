package robinhood

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ornge-julius/TradeJournal-2/src/models"
)

const activityHeader = `"Activity Date","Process Date","Settle Date","Instrument","Description","Trans Code","Quantity","Price","Amount"`

func parseCSV(t *testing.T, rows ...string) ([]models.Transaction, []models.Warning) {
	t.Helper()
	input := strings.Join(append([]string{activityHeader}, rows...), "\n")
	txs, warnings, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	return txs, warnings
}

func TestParse_OpenAndCloseLegs(t *testing.T) {
	txs, warnings := parseCSV(t,
		`"09/02/2025","09/02/2025","09/03/2025","SPY","SPY 1/17/2025 Call $590.00","BTO","1","$3.86","($386.04)"`,
		`"09/05/2025","09/05/2025","09/08/2025","SPY","SPY 1/17/2025 Call $590.00","STC","1","$4.50","$450.00"`,
	)

	require.Empty(t, warnings)
	require.Len(t, txs, 2)

	open := txs[0]
	assert.Equal(t, "robinhood", open.Source)
	assert.Equal(t, "SPY", open.Symbol)
	assert.Equal(t, models.ActionOpen, open.Action)
	assert.Equal(t, 1, open.Quantity)
	assert.Equal(t, 3.86, open.UnitPrice)
	assert.Equal(t, -386.04, open.TotalAmount)
	assert.Equal(t, models.PositionTypeCall, open.PositionType)
	assert.Equal(t, "SPY|SPY 1/17/2025 Call $590.00", open.GroupingKey)
	assert.True(t, open.Timestamp.Equal(time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)))

	close_ := txs[1]
	assert.Equal(t, models.ActionClose, close_.Action)
	assert.Equal(t, 450.00, close_.TotalAmount)
}

func TestParse_NonOptionRowsDroppedSilently(t *testing.T) {
	txs, warnings := parseCSV(t,
		`"09/02/2025","09/02/2025","09/03/2025","AAPL","Apple Dividend","CDIV","","","$12.50"`,
		`"09/02/2025","09/02/2025","09/03/2025","","ACH Deposit","ACH","","","$500.00"`,
	)
	assert.Empty(t, txs)
	assert.Empty(t, warnings)
}

func TestParse_PutDescription(t *testing.T) {
	txs, _ := parseCSV(t,
		`"09/02/2025","09/02/2025","09/03/2025","qqq","QQQ 1/17/2025 Put $500.00","BTO","2","$2.10","($420.00)"`,
	)
	require.Len(t, txs, 1)
	assert.Equal(t, "QQQ", txs[0].Symbol)
	assert.Equal(t, models.PositionTypePut, txs[0].PositionType)
}

func TestParse_BadRowsDropWithWarning(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{
			name:   "bad date",
			row:    `"not-a-date","","","SPY","SPY 1/17/2025 Call $590.00","BTO","1","$3.86","($386.04)"`,
			reason: "invalid activity date",
		},
		{
			name:   "bad price",
			row:    `"09/02/2025","","","SPY","SPY 1/17/2025 Call $590.00","BTO","1","N/A","($386.04)"`,
			reason: "invalid price",
		},
		{
			name:   "bad amount",
			row:    `"09/02/2025","","","SPY","SPY 1/17/2025 Call $590.00","BTO","1","$3.86","pending"`,
			reason: "invalid amount",
		},
		{
			name:   "bad quantity",
			row:    `"09/02/2025","","","SPY","SPY 1/17/2025 Call $590.00","BTO","zero","$3.86","($386.04)"`,
			reason: "invalid quantity",
		},
		{
			name:   "no call or put keyword",
			row:    `"09/02/2025","","","SPY","SPY something else","BTO","1","$3.86","($386.04)"`,
			reason: "could not determine position type",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txs, warnings := parseCSV(t, tc.row)
			assert.Empty(t, txs)
			require.Len(t, warnings, 1)
			assert.Equal(t, models.WarningStageParse, warnings[0].Stage)
			assert.Contains(t, warnings[0].Reason, tc.reason)
		})
	}
}

func TestParse_EmptyRowsSkipped(t *testing.T) {
	txs, warnings := parseCSV(t,
		`"","","","","","","","",""`,
		`"09/02/2025","09/02/2025","09/03/2025","SPY","SPY 1/17/2025 Call $590.00","BTO","1","$3.86","($386.04)"`,
	)
	assert.Empty(t, warnings)
	assert.Len(t, txs, 1)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("($386.04)")
	require.NoError(t, err)
	assert.Equal(t, -386.04, v)

	v, err = ParseAmount("$225.95")
	require.NoError(t, err)
	assert.Equal(t, 225.95, v)

	v, err = ParseAmount("($1,386.04)")
	require.NoError(t, err)
	assert.Equal(t, -1386.04, v)

	_, err = ParseAmount("")
	assert.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	v, err := ParsePrice("$3.86")
	require.NoError(t, err)
	assert.Equal(t, 3.86, v)

	_, err = ParsePrice("N/A")
	assert.Error(t, err)
}
