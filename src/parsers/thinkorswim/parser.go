// Package thinkorswim parses the thinkorswim cash-balance export CSV.
//
// Trade rows (TYPE "TRD") describe the whole execution in a single
// free-text DESCRIPTION field, e.g.
//
//	BOT +2 QQQ 100 (Weeklys) 17 JAN 25 515 CALL @2.05
//
// carrying the action, signed contract quantity, underlying symbol,
// contract multiplier, optional series annotation, expiration, strike,
// option type and execution price. Rows whose description does not
// match this grammar are dropped with a warning.
package thinkorswim

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/utils"
)

const (
	dateLayout     = "1/2/06"
	timeLayout     = "15:04:05"
	dateTimeLayout = "1/2/06 15:04:05"
)

// executionRe captures, in order: action, signed quantity, underlying,
// multiplier, expiry day, expiry month, expiry year, strike, option
// type and execution price.
var executionRe = regexp.MustCompile(
	`^(BOT|SOLD)\s+([+-]?[\d,]+)\s+([A-Z][A-Z.\d]*)\s+(\d+)(?:\s+\([A-Za-z ]+\))?\s+(\d{1,2})\s+([A-Z]{3})\s+(\d{2})\s+([\d.]+)\s+(CALL|PUT)\s+@([\d.]+)$`)

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

type ThinkorswimParser struct{}

func NewParser() *ThinkorswimParser {
	return &ThinkorswimParser{}
}

func (p *ThinkorswimParser) Parse(file io.Reader) ([]models.Transaction, []models.Warning, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("thinkorswim parser: failed to read CSV header: %w", err)
	}
	columns := indexColumns(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("thinkorswim parser: failed to read CSV records: %w", err)
	}

	var txs []models.Transaction
	var warnings []models.Warning
	for _, record := range records {
		row := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		if row("TYPE") != "TRD" {
			continue
		}
		description := row("DESCRIPTION")
		dateStr := row("DATE")

		drop := func(reason string, symbol string, qty int) {
			warnings = append(warnings, models.Warning{
				Stage:       models.WarningStageParse,
				Symbol:      symbol,
				Description: description,
				Date:        dateStr,
				Quantity:    qty,
				Reason:      reason,
			})
		}

		exec, ok := parseExecution(description)
		if !ok {
			drop("unrecognized execution description", "", 0)
			continue
		}

		timestamp, err := parseTimestamp(dateStr, row("TIME"))
		if err != nil {
			drop(fmt.Sprintf("invalid date %q", dateStr), exec.symbol, exec.quantity)
			continue
		}

		quantity, amount := resolveAmount(exec, row("AMOUNT"))
		if quantity <= 0 {
			drop("execution quantity resolved to zero", exec.symbol, 0)
			continue
		}

		txs = append(txs, models.Transaction{
			Source:       "thinkorswim",
			Symbol:       exec.symbol,
			Description:  description,
			Action:       exec.action,
			Quantity:     quantity,
			UnitPrice:    exec.price,
			TotalAmount:  amount,
			Timestamp:    timestamp,
			GroupingKey:  exec.groupingKey(),
			PositionType: exec.positionType,
		})
	}

	return txs, warnings, nil
}

// execution holds the fields extracted from a TRD description.
type execution struct {
	action       models.Action
	quantity     int // contracts, absolute
	symbol       string
	multiplier   int
	expiry       time.Time
	strike       string
	positionType models.PositionType
	price        float64
}

func (e execution) groupingKey() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		e.symbol, strings.ToUpper(e.expiry.Format("02Jan06")), e.strike, e.positionType)
}

func parseExecution(description string) (execution, bool) {
	matches := executionRe.FindStringSubmatch(description)
	if matches == nil {
		return execution{}, false
	}

	var exec execution

	switch matches[1] {
	case "BOT":
		exec.action = models.ActionOpen
	case "SOLD":
		exec.action = models.ActionClose
	}

	qtyStr := strings.TrimLeft(strings.ReplaceAll(matches[2], ",", ""), "+")
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return execution{}, false
	}
	exec.quantity = utils.AbsInt(qty)

	exec.symbol = strings.ToUpper(matches[3])
	exec.multiplier, _ = strconv.Atoi(matches[4])

	day, _ := strconv.Atoi(matches[5])
	month, ok := months[matches[6]]
	if !ok {
		return execution{}, false
	}
	year, _ := strconv.Atoi(matches[7])
	exec.expiry = time.Date(2000+year, month, day, 0, 0, 0, 0, time.UTC)

	exec.strike = matches[8]
	if matches[9] == "CALL" {
		exec.positionType = models.PositionTypeCall
	} else {
		exec.positionType = models.PositionTypePut
	}

	price, err := strconv.ParseFloat(matches[10], 64)
	if err != nil {
		return execution{}, false
	}
	exec.price = price

	return exec, true
}

func parseTimestamp(dateStr, timeStr string) (time.Time, error) {
	if timeStr != "" {
		if t, err := time.Parse(dateTimeLayout, dateStr+" "+timeStr); err == nil {
			return t, nil
		}
	}
	return time.Parse(dateLayout, dateStr)
}

// resolveAmount determines the contract quantity and signed cash amount
// for an execution. The AMOUNT column wins when present: its sign is
// authoritative, and when it implies a different lot count than the
// description (|amount| / (price x multiplier), rounded to the nearest
// integer lot), the implied count wins. Without a parseable amount the
// cash flow is derived as price x quantity x multiplier, negative for a
// buy.
func resolveAmount(exec execution, amountStr string) (int, float64) {
	quantity := exec.quantity

	amount, err := parseAmount(amountStr)
	if err == nil && amount != 0 {
		if exec.price > 0 && exec.multiplier > 0 {
			implied := int(math.Round(math.Abs(amount) / (exec.price * float64(exec.multiplier))))
			if implied > 0 {
				quantity = implied
			}
		}
		return quantity, amount
	}

	derived := exec.price * float64(quantity) * float64(exec.multiplier)
	if exec.action == models.ActionOpen {
		derived = -derived
	}
	return quantity, derived
}

func parseAmount(s string) (float64, error) {
	negative := strings.Contains(s, "(") || strings.HasPrefix(strings.TrimSpace(s), "-")
	cleaned := strings.NewReplacer("$", "", "(", "", ")", "", ",", "", "-", "").Replace(s)
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, err
	}
	if negative {
		return -value, nil
	}
	return value, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}
