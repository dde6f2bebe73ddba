package services

import (
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ornge-julius/TradeJournal-2/src/logger"
	"github.com/ornge-julius/TradeJournal-2/src/matcher"
	"github.com/ornge-julius/TradeJournal-2/src/parsers"
	"github.com/ornge-julius/TradeJournal-2/src/writers"
)

const (
	ckLatestImportResult = "latest_import_result_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type importServiceImpl struct {
	engine      *matcher.Engine
	meta        matcher.Metadata
	resultCache *cache.Cache
}

func NewImportService(meta matcher.Metadata, resultCache *cache.Cache) ImportService {
	return &importServiceImpl{
		engine:      matcher.New(meta),
		meta:        meta,
		resultCache: resultCache,
	}
}

func (s *importServiceImpl) ImportFromReader(file io.Reader, sourceFormat string) (*ImportResult, error) {
	parser, err := parsers.GetParser(sourceFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceFormat)
	}

	transactions, parseWarnings, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	logger.L.Info("Parsed transactions",
		"sourceFormat", sourceFormat,
		"transactions", len(transactions),
		"droppedRows", len(parseWarnings))

	matchResult := s.engine.Match(transactions)
	logger.L.Info("Matched trades",
		"sourceFormat", sourceFormat,
		"trades", len(matchResult.Trades),
		"unmatchedLegs", len(matchResult.Warnings))

	result := &ImportResult{
		SourceFormat: sourceFormat,
		Trades:       matchResult.Trades,
		Warnings:     append(parseWarnings, matchResult.Warnings...),
		Summary:      writers.Summarize(matchResult.Trades),
	}

	if s.resultCache != nil {
		s.resultCache.Set(fmt.Sprintf(ckLatestImportResult, sourceFormat), result, cache.DefaultExpiration)
	}
	return result, nil
}

// LatestResult returns the most recent import result for a source
// format, if one is still cached.
func (s *importServiceImpl) LatestResult(sourceFormat string) (*ImportResult, bool) {
	if s.resultCache == nil {
		return nil, false
	}
	cached, found := s.resultCache.Get(fmt.Sprintf(ckLatestImportResult, sourceFormat))
	if !found {
		return nil, false
	}
	result, ok := cached.(*ImportResult)
	return result, ok
}

func (s *importServiceImpl) Metadata() matcher.Metadata {
	return s.meta
}
