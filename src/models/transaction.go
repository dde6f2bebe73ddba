package models

import "time"

// Action classifies a transaction leg as opening or closing a position.
type Action string

const (
	ActionOpen  Action = "OPEN"
	ActionClose Action = "CLOSE"
)

// PositionType identifies the option contract type of a position.
//
// The exported integer values are the canonical wire encoding used in
// trade rows: Call=1, Put=2. The legacy export pipelines disagreed on
// the put encoding (0 in one, 2 in the other); 2 was chosen so that a
// put is never confused with the zero value or with the Loss result
// code.
type PositionType int

const (
	PositionTypeUnknown PositionType = 0
	PositionTypeCall    PositionType = 1
	PositionTypePut     PositionType = 2
)

func (p PositionType) String() string {
	switch p {
	case PositionTypeCall:
		return "CALL"
	case PositionTypePut:
		return "PUT"
	}
	return "UNKNOWN"
}

// Transaction is the normalized form of a single executed order leg.
// Parsers produce one Transaction per opening or closing option
// execution; all other activity rows are filtered out. A Transaction is
// never mutated after parsing.
type Transaction struct {
	Source       string       `json:"source"` // e.g. "robinhood", "thinkorswim"
	Symbol       string       `json:"symbol"` // underlying ticker, uppercase
	Description  string       `json:"description"`
	Action       Action       `json:"action"`
	Quantity     int          `json:"quantity"`     // contracts in this leg, always > 0
	UnitPrice    float64      `json:"unit_price"`   // quoted price per contract
	TotalAmount  float64      `json:"total_amount"` // signed cash flow: negative open cost, positive close proceeds
	Timestamp    time.Time    `json:"timestamp"`
	GroupingKey  string       `json:"grouping_key"` // identifies the instrument for open/close matching
	PositionType PositionType `json:"position_type"`
}
