package writers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ornge-julius/TradeJournal-2/src/models"
)

func sampleTrades() []models.Trade {
	return []models.Trade{
		{
			Symbol:       "SPY",
			PositionType: models.PositionTypeCall,
			EntryPrice:   3.86,
			ExitPrice:    4.50,
			Quantity:     1,
			EntryDate:    time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC),
			ExitDate:     time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC),
			Source:       "DATA UPLOAD",
			Reasoning:    "DATA UPLOAD",
			Result:       models.ResultWin,
			AccountID:    "acct-1",
			UserID:       "user-1",
			Profit:       63.96,
			Option:       "SPY 1/17/2025 Call $590.00",
		},
		{
			Symbol:       "QQQ",
			PositionType: models.PositionTypePut,
			EntryPrice:   2.10,
			ExitPrice:    1.80,
			Quantity:     2,
			EntryDate:    time.Date(2025, time.September, 3, 9, 31, 2, 0, time.UTC),
			ExitDate:     time.Date(2025, time.September, 4, 15, 59, 59, 0, time.UTC),
			Source:       "DATA UPLOAD",
			Reasoning:    "DATA UPLOAD",
			Result:       models.ResultLoss,
			Notes:        "cut early",
			Profit:       -60.00,
			Option:       "QQQ 1/17/2025 Put $500.00",
		},
	}
}

func TestWriteTrades_ColumnOrderAndFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, sampleTrades()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(TradeColumns, ","), lines[0])

	assert.Equal(t,
		`SPY,1,3.86,4.5,1,2025-09-02 00:00:00,2025-09-05 00:00:00,DATA UPLOAD,DATA UPLOAD,1,,acct-1,user-1,63.96,SPY 1/17/2025 Call $590.00`,
		lines[1])
	// Put encodes as 2, loss as 0, profit always with 2 decimals.
	assert.Equal(t,
		`QQQ,2,2.1,1.8,2,2025-09-03 09:31:02,2025-09-04 15:59:59,DATA UPLOAD,DATA UPLOAD,0,cut early,,,-60.00,QQQ 1/17/2025 Put $500.00`,
		lines[2])
}

func TestReadTrades_RoundTrip(t *testing.T) {
	trades := sampleTrades()

	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, trades))

	parsed, err := ReadTrades(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(trades))

	for i := range trades {
		assert.Equal(t, trades[i].Symbol, parsed[i].Symbol)
		assert.Equal(t, trades[i].PositionType, parsed[i].PositionType)
		assert.Equal(t, trades[i].EntryPrice, parsed[i].EntryPrice)
		assert.Equal(t, trades[i].ExitPrice, parsed[i].ExitPrice)
		assert.Equal(t, trades[i].Quantity, parsed[i].Quantity)
		assert.True(t, trades[i].EntryDate.Equal(parsed[i].EntryDate))
		assert.True(t, trades[i].ExitDate.Equal(parsed[i].ExitDate))
		assert.Equal(t, trades[i].Result, parsed[i].Result)
		assert.Equal(t, trades[i].Notes, parsed[i].Notes)
		assert.Equal(t, trades[i].AccountID, parsed[i].AccountID)
		assert.Equal(t, trades[i].Profit, parsed[i].Profit)
		assert.Equal(t, trades[i].Option, parsed[i].Option)
	}
}

func TestReadTrades_RejectsMalformedRows(t *testing.T) {
	input := strings.Join(TradeColumns, ",") + "\n" +
		"SPY,one,3.86,4.5,1,2025-09-02,2025-09-05,s,r,1,,a,u,63.96,opt\n"
	_, err := ReadTrades(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position_type")
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTrades())
	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 3.96, s.TotalProfit, 0.001)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestRenderSummary_IncludesTotals(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, Summarize(sampleTrades()))
	out := buf.String()
	assert.Contains(t, out, "$3.96")
	assert.Contains(t, out, "2")
}
