// Package robinhood parses the Robinhood activity report CSV.
//
// The report carries one row per order leg with the columns
// "Activity Date", "Process Date", "Settle Date", "Instrument",
// "Description", "Trans Code", "Quantity", "Price" and "Amount".
// Only buy-to-open (BTO) and sell-to-close (STC) option executions are
// normalized; every other transaction code (dividends, transfers,
// stock trades) is dropped silently.
package robinhood

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ornge-julius/TradeJournal-2/src/models"
)

const dateLayout = "01/02/2006"

type RobinhoodParser struct{}

func NewParser() *RobinhoodParser {
	return &RobinhoodParser{}
}

func (p *RobinhoodParser) Parse(file io.Reader) ([]models.Transaction, []models.Warning, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("robinhood parser: failed to read CSV header: %w", err)
	}
	columns := indexColumns(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("robinhood parser: failed to read CSV records: %w", err)
	}

	var txs []models.Transaction
	var warnings []models.Warning
	for _, record := range records {
		if isEmptyRecord(record) {
			continue
		}
		row := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.Trim(strings.TrimSpace(record[idx]), `"`)
		}

		transCode := row("Trans Code")
		if transCode != "BTO" && transCode != "STC" {
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(row("Instrument")))
		description := row("Description")
		dateStr := row("Activity Date")

		drop := func(reason string, qty int) {
			warnings = append(warnings, models.Warning{
				Stage:       models.WarningStageParse,
				Symbol:      symbol,
				Description: description,
				Date:        dateStr,
				Quantity:    qty,
				Reason:      reason,
			})
		}

		timestamp, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			drop(fmt.Sprintf("invalid activity date %q", dateStr), 0)
			continue
		}

		quantity, err := strconv.Atoi(row("Quantity"))
		if err != nil || quantity <= 0 {
			drop(fmt.Sprintf("invalid quantity %q", row("Quantity")), 0)
			continue
		}

		price, err := ParsePrice(row("Price"))
		if err != nil {
			drop(fmt.Sprintf("invalid price %q", row("Price")), quantity)
			continue
		}

		amount, err := ParseAmount(row("Amount"))
		if err != nil {
			drop(fmt.Sprintf("invalid amount %q", row("Amount")), quantity)
			continue
		}

		positionType := positionTypeFromDescription(description)
		if positionType == models.PositionTypeUnknown {
			drop("could not determine position type", quantity)
			continue
		}

		action := models.ActionOpen
		if transCode == "STC" {
			action = models.ActionClose
		}

		txs = append(txs, models.Transaction{
			Source:       "robinhood",
			Symbol:       symbol,
			Description:  description,
			Action:       action,
			Quantity:     quantity,
			UnitPrice:    price,
			TotalAmount:  amount,
			Timestamp:    timestamp,
			GroupingKey:  symbol + "|" + description,
			PositionType: positionType,
		})
	}

	return txs, warnings, nil
}

// ParseAmount converts strings like "($386.04)" or "$225.95" to a
// signed value. Parentheses denote a negative amount.
func ParseAmount(s string) (float64, error) {
	negative := strings.Contains(s, "(")
	cleaned := strings.NewReplacer("$", "", "(", "", ")", "", ",", "").Replace(s)
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, err
	}
	if negative {
		return -value, nil
	}
	return value, nil
}

// ParsePrice converts strings like "$3.86" to a decimal value.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", "")
	return strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
}

func positionTypeFromDescription(description string) models.PositionType {
	if strings.Contains(description, "Call") {
		return models.PositionTypeCall
	}
	if strings.Contains(description, "Put") {
		return models.PositionTypePut
	}
	return models.PositionTypeUnknown
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.Trim(strings.TrimSpace(name), `"`)] = i
	}
	return columns
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
