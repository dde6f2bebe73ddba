package parsers

import (
	"io"

	"github.com/ornge-julius/TradeJournal-2/src/models"
)

// Parser converts one brokerage export into normalized transactions.
// Rows that cannot be normalized are dropped and reported as warnings;
// only an unreadable source yields an error.
type Parser interface {
	Parse(file io.Reader) ([]models.Transaction, []models.Warning, error)
}
