// Package writers serializes matched trades for downstream consumers:
// the fixed-column CSV used for bulk database import, and a terminal
// summary table.
package writers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/utils"
)

// TradeColumns is the fixed output column order expected by the journal
// import schema.
var TradeColumns = []string{
	"symbol", "position_type", "entry_price", "exit_price", "quantity",
	"entry_date", "exit_date", "source", "reasoning", "result", "notes",
	"account_id", "user_id", "profit", "option",
}

// WriteTrades writes trades as CSV with a header row. Profit is fixed
// to 2 decimals; dates use the canonical "YYYY-MM-DD HH:MM:SS" layout.
func WriteTrades(w io.Writer, trades []models.Trade) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TradeColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, trade := range trades {
		record := []string{
			trade.Symbol,
			strconv.Itoa(int(trade.PositionType)),
			formatFloat(trade.EntryPrice),
			formatFloat(trade.ExitPrice),
			strconv.Itoa(trade.Quantity),
			utils.FormatTimestamp(trade.EntryDate),
			utils.FormatTimestamp(trade.ExitDate),
			trade.Source,
			trade.Reasoning,
			strconv.Itoa(int(trade.Result)),
			trade.Notes,
			trade.AccountID,
			trade.UserID,
			strconv.FormatFloat(trade.Profit, 'f', 2, 64),
			trade.Option,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write trade row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadTrades parses CSV produced by WriteTrades back into trades.
func ReadTrades(r io.Reader) ([]models.Trade, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(TradeColumns)

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var trades []models.Trade
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read trade row: %w", err)
		}

		positionType, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid position_type %q: %w", record[1], err)
		}
		entryPrice, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid entry_price %q: %w", record[2], err)
		}
		exitPrice, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid exit_price %q: %w", record[3], err)
		}
		quantity, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", record[4], err)
		}
		entryDate, err := utils.ParseTimestamp(record[5])
		if err != nil {
			return nil, fmt.Errorf("invalid entry_date %q: %w", record[5], err)
		}
		exitDate, err := utils.ParseTimestamp(record[6])
		if err != nil {
			return nil, fmt.Errorf("invalid exit_date %q: %w", record[6], err)
		}
		result, err := strconv.Atoi(record[9])
		if err != nil {
			return nil, fmt.Errorf("invalid result %q: %w", record[9], err)
		}
		profit, err := strconv.ParseFloat(record[13], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid profit %q: %w", record[13], err)
		}

		trades = append(trades, models.Trade{
			Symbol:       record[0],
			PositionType: models.PositionType(positionType),
			EntryPrice:   entryPrice,
			ExitPrice:    exitPrice,
			Quantity:     quantity,
			EntryDate:    entryDate,
			ExitDate:     exitDate,
			Source:       record[7],
			Reasoning:    record[8],
			Result:       models.Result(result),
			Notes:        record[10],
			AccountID:    record[11],
			UserID:       record[12],
			Profit:       profit,
			Option:       record[14],
		})
	}
	return trades, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
