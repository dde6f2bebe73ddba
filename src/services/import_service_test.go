package services

import (
	"strings"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ornge-julius/TradeJournal-2/src/logger"
	"github.com/ornge-julius/TradeJournal-2/src/matcher"
	"github.com/ornge-julius/TradeJournal-2/src/models"
)

func init() {
	logger.InitLogger("error")
}

const robinhoodActivity = `"Activity Date","Process Date","Settle Date","Instrument","Description","Trans Code","Quantity","Price","Amount"
"09/02/2025","09/02/2025","09/03/2025","SPY","SPY 1/17/2025 Call $590.00","BTO","2","$3.86","($772.08)"
"09/03/2025","09/03/2025","09/04/2025","AAPL","Apple Dividend","CDIV","","","$12.50"
"09/05/2025","09/05/2025","09/08/2025","SPY","SPY 1/17/2025 Call $590.00","STC","1","$4.50","$450.00"
"09/08/2025","09/08/2025","09/09/2025","QQQ","QQQ 1/17/2025 Put $500.00","STC","1","$1.80","$180.00"
`

func newTestService(c *cache.Cache) ImportService {
	return NewImportService(matcher.Metadata{
		Source:    "DATA UPLOAD",
		Reasoning: "DATA UPLOAD",
		AccountID: "acct-1",
		UserID:    "user-1",
	}, c)
}

func TestImportFromReader_EndToEnd(t *testing.T) {
	svc := newTestService(nil)

	result, err := svc.ImportFromReader(strings.NewReader(robinhoodActivity), "robinhood")
	require.NoError(t, err)

	// One close fragment matched against the two-contract open.
	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, "SPY", trade.Symbol)
	assert.Equal(t, 1, trade.Quantity)
	assert.Equal(t, 63.96, trade.Profit) // 450.00 - 772.08/2
	assert.Equal(t, models.ResultWin, trade.Result)
	assert.Equal(t, "acct-1", trade.AccountID)

	// The QQQ close has no open, and one SPY contract stays pending.
	require.Len(t, result.Warnings, 2)
	reasons := []string{result.Warnings[0].Reason, result.Warnings[1].Reason}
	assert.Contains(t, reasons, "close without matching open")
	assert.Contains(t, reasons, "unmatched open (incomplete trade)")

	assert.Equal(t, 1, result.Summary.TotalTrades)
	assert.Equal(t, 1, result.Summary.Wins)
	assert.Equal(t, 0, result.Summary.Losses)
	assert.InDelta(t, 63.96, result.Summary.TotalProfit, 0.001)
}

func TestImportFromReader_UnknownSource(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.ImportFromReader(strings.NewReader(robinhoodActivity), "etrade")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestImportFromReader_UnreadableInputIsFatal(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.ImportFromReader(strings.NewReader(""), "robinhood")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParsingFailed)
}

func TestLatestResult_Cached(t *testing.T) {
	c := cache.New(DefaultCacheExpiration, CacheCleanupInterval)
	svc := newTestService(c)

	_, found := svc.LatestResult("robinhood")
	assert.False(t, found)

	imported, err := svc.ImportFromReader(strings.NewReader(robinhoodActivity), "robinhood")
	require.NoError(t, err)

	cached, found := svc.LatestResult("robinhood")
	require.True(t, found)
	assert.Equal(t, imported, cached)
}
