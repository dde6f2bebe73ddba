package writers

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ornge-julius/TradeJournal-2/src/models"
)

// Summary aggregates a matching run for display.
type Summary struct {
	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	TotalProfit float64 `json:"total_profit"`
}

func Summarize(trades []models.Trade) Summary {
	s := Summary{TotalTrades: len(trades)}
	for _, trade := range trades {
		if trade.Result == models.ResultWin {
			s.Wins++
		} else {
			s.Losses++
		}
		s.TotalProfit += trade.Profit
	}
	return s
}

// RenderSummary prints the run summary as a terminal table.
func RenderSummary(out io.Writer, s Summary) {
	table := tablewriter.NewWriter(out)
	table.Header("Trades", "Wins", "Losses", "Total Profit")
	table.Append(
		fmt.Sprintf("%d", s.TotalTrades),
		fmt.Sprintf("%d", s.Wins),
		fmt.Sprintf("%d", s.Losses),
		fmt.Sprintf("$%.2f", s.TotalProfit),
	)
	table.Render()
}
