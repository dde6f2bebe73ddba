package services

import (
	"errors"
	"io"

	"github.com/ornge-julius/TradeJournal-2/src/matcher"
	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/writers"
)

var (
	ErrUnknownSource = errors.New("unknown source format")
	ErrParsingFailed = errors.New("failed to parse input file")
)

// ImportResult is the full outcome of one import: the matched trades,
// every parser and matcher warning, and an aggregate summary.
type ImportResult struct {
	SourceFormat string           `json:"source_format"`
	Trades       []models.Trade   `json:"trades"`
	Warnings     []models.Warning `json:"warnings"`
	Summary      writers.Summary  `json:"summary"`
}

// ImportService runs the parse-match-build pipeline over one export.
type ImportService interface {
	ImportFromReader(file io.Reader, sourceFormat string) (*ImportResult, error)
	LatestResult(sourceFormat string) (*ImportResult, bool)
	Metadata() matcher.Metadata
}
