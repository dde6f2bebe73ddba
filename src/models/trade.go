package models

import "time"

// Result encodes the outcome of a completed trade: Win=1, Loss=0.
// A trade with exactly zero profit counts as a Loss; the boundary is
// intentionally asymmetric because it is observable behavior of the
// original importer.
type Result int

const (
	ResultLoss Result = 0
	ResultWin  Result = 1
)

// Trade is one completed round trip carved from an open leg and a close
// leg. Quantity is the matched fragment and may be smaller than either
// leg's original quantity; EntryPrice and ExitPrice are always the full
// legs' quoted unit prices. Source, Reasoning, Notes, AccountID and
// UserID are pass-through metadata supplied by configuration.
type Trade struct {
	Symbol       string       `json:"symbol"`
	PositionType PositionType `json:"position_type"`
	EntryPrice   float64      `json:"entry_price"`
	ExitPrice    float64      `json:"exit_price"`
	Quantity     int          `json:"quantity"`
	EntryDate    time.Time    `json:"entry_date"`
	ExitDate     time.Time    `json:"exit_date"`
	Source       string       `json:"source"`
	Reasoning    string       `json:"reasoning"`
	Result       Result       `json:"result"`
	Notes        string       `json:"notes"`
	AccountID    string       `json:"account_id"`
	UserID       string       `json:"user_id"`
	Profit       float64      `json:"profit"` // rounded to 2 decimals
	Option       string       `json:"option"` // instrument description of the open leg
}
