package parsers

import (
	"fmt"

	"github.com/ornge-julius/TradeJournal-2/src/parsers/robinhood"
	"github.com/ornge-julius/TradeJournal-2/src/parsers/thinkorswim"
)

func GetParser(source string) (Parser, error) {
	switch source {
	case "robinhood":
		return robinhood.NewParser(), nil
	case "thinkorswim":
		return thinkorswim.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
