package models

import "fmt"

// Warning stages.
const (
	WarningStageParse = "parse"
	WarningStageMatch = "match"
)

// Warning is a non-fatal diagnostic for a row or leg that could not be
// processed: a dropped input row, an unmatched close, or an open left
// with unconsumed quantity at the end of a run. Warnings accumulate
// alongside results; they never abort processing.
type Warning struct {
	Stage       string `json:"stage"`
	Symbol      string `json:"symbol,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
	Reason      string `json:"reason"`
}

func (w Warning) String() string {
	s := w.Reason
	if w.Symbol != "" {
		s = fmt.Sprintf("%s: %s %s", w.Reason, w.Symbol, w.Description)
	}
	if w.Date != "" {
		s = fmt.Sprintf("%s on %s", s, w.Date)
	}
	if w.Quantity > 0 {
		s = fmt.Sprintf("%s (qty: %d)", s, w.Quantity)
	}
	return s
}
