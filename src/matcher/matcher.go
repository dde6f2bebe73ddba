// Package matcher pairs opening and closing option legs into completed
// trades. Matching is FIFO per instrument: the oldest open is consumed
// first, and a single leg may be split across several trades when
// quantities do not line up (partial fills on either side).
package matcher

import (
	"sort"

	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/utils"
)

// Metadata carries the pass-through fields stamped onto every trade.
// None of them are derived from the transactions themselves.
type Metadata struct {
	Source    string
	Reasoning string
	Notes     string
	AccountID string
	UserID    string
}

// MatchResult is the outcome of one matching run: the completed trades
// plus a warning for every leg that could not be fully matched.
type MatchResult struct {
	Trades   []models.Trade   `json:"trades"`
	Warnings []models.Warning `json:"warnings"`
}

// pendingOpen tracks how much of an open leg is still unconsumed.
// The wrapped transaction is never mutated, so per-unit amounts are
// always computed against the leg's original quantity.
type pendingOpen struct {
	tx        *models.Transaction
	remaining int
}

type Engine struct {
	meta Metadata
}

func New(meta Metadata) *Engine {
	return &Engine{meta: meta}
}

// Match runs the full matching pass over the given transactions.
//
// Transactions are sorted by timestamp, opens before closes on equal
// timestamps so that same-day round trips pair up. Each close then
// consumes pending opens of the same grouping key oldest-first,
// emitting one trade per (open fragment, close fragment) pairing.
// Closes with no remaining open and opens never fully closed are
// reported as warnings, not errors. The pass is deterministic and
// re-running it on the same input yields the same result.
func (e *Engine) Match(transactions []models.Transaction) MatchResult {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return actionRank(sorted[i].Action) < actionRank(sorted[j].Action)
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	pendingOpens := make(map[string][]*pendingOpen)
	var keyOrder []string // map iteration order is not deterministic; report leftovers in first-seen order

	var result MatchResult
	for i := range sorted {
		tx := &sorted[i]
		key := tx.GroupingKey

		switch tx.Action {
		case models.ActionOpen:
			if _, seen := pendingOpens[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			pendingOpens[key] = append(pendingOpens[key], &pendingOpen{tx: tx, remaining: tx.Quantity})

		case models.ActionClose:
			remaining := tx.Quantity
			for remaining > 0 && len(pendingOpens[key]) > 0 {
				open := pendingOpens[key][0]
				matched := utils.MinInt(remaining, open.remaining)

				trade, warning := buildTrade(open.tx, tx, matched, e.meta)
				if warning != nil {
					result.Warnings = append(result.Warnings, *warning)
				} else {
					result.Trades = append(result.Trades, trade)
				}

				remaining -= matched
				open.remaining -= matched
				if open.remaining == 0 {
					pendingOpens[key] = pendingOpens[key][1:]
				}
			}
			if remaining > 0 {
				result.Warnings = append(result.Warnings, models.Warning{
					Stage:       models.WarningStageMatch,
					Symbol:      tx.Symbol,
					Description: tx.Description,
					Date:        tx.Timestamp.Format("2006-01-02"),
					Quantity:    remaining,
					Reason:      "close without matching open",
				})
			}
		}
	}

	// Whatever is left in the queues was opened but never (fully) closed.
	for _, key := range keyOrder {
		for _, open := range pendingOpens[key] {
			result.Warnings = append(result.Warnings, models.Warning{
				Stage:       models.WarningStageMatch,
				Symbol:      open.tx.Symbol,
				Description: open.tx.Description,
				Date:        open.tx.Timestamp.Format("2006-01-02"),
				Quantity:    open.remaining,
				Reason:      "unmatched open (incomplete trade)",
			})
		}
	}

	return result
}

func actionRank(a models.Action) int {
	if a == models.ActionOpen {
		return 0
	}
	return 1
}
