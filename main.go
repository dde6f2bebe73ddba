package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/ornge-julius/TradeJournal-2/src/config"
	"github.com/ornge-julius/TradeJournal-2/src/database"
	"github.com/ornge-julius/TradeJournal-2/src/handlers"
	"github.com/ornge-julius/TradeJournal-2/src/logger"
	"github.com/ornge-julius/TradeJournal-2/src/matcher"
	"github.com/ornge-julius/TradeJournal-2/src/services"
	"github.com/ornge-julius/TradeJournal-2/src/writers"

	"github.com/patrickmn/go-cache"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	mode := flag.String("mode", "transform", "run mode: transform (batch CSV to CSV) or serve (HTTP import API)")
	source := flag.String("source", "", "source export format: robinhood or thinkorswim (default from SOURCE_FORMAT)")
	inputPath := flag.String("in", "", "input CSV path (default from INPUT_PATH)")
	outputPath := flag.String("out", "", "output CSV path (default from OUTPUT_PATH)")
	persist := flag.Bool("persist", false, "also store matched trades in the SQLite journal")
	flag.Parse()

	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	if *source == "" {
		*source = config.Cfg.SourceFormat
	}
	if *inputPath == "" {
		*inputPath = config.Cfg.InputPath
	}
	if *outputPath == "" {
		*outputPath = config.Cfg.OutputPath
	}

	meta := matcher.Metadata{
		Source:    config.Cfg.ImportSource,
		Reasoning: config.Cfg.ImportReasoning,
		AccountID: config.Cfg.AccountID,
		UserID:    config.Cfg.UserID,
	}

	switch *mode {
	case "transform":
		runTransform(meta, *source, *inputPath, *outputPath, *persist)
	case "serve":
		runServe(meta)
	default:
		logger.L.Error("Unknown mode", "mode", *mode)
		os.Exit(1)
	}
}

// runTransform is the batch flow: read one export, match it, write the
// trade CSV and print a summary. Every dropped row and unmatched leg is
// logged as a warning; only an unreadable input is fatal.
func runTransform(meta matcher.Metadata, source, inputPath, outputPath string, persist bool) {
	importService := services.NewImportService(meta, nil)

	input, err := os.Open(inputPath)
	if err != nil {
		logger.L.Error("Failed to open input file", "path", inputPath, "error", err)
		os.Exit(1)
	}
	defer input.Close()

	logger.L.Info("Reading transactions", "path", inputPath, "sourceFormat", source)
	result, err := importService.ImportFromReader(input, source)
	if err != nil {
		logger.L.Error("Import failed", "error", err)
		os.Exit(1)
	}

	for _, warning := range result.Warnings {
		logger.L.Warn(warning.String(), "stage", warning.Stage)
	}

	output, err := os.Create(outputPath)
	if err != nil {
		logger.L.Error("Failed to create output file", "path", outputPath, "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := writers.WriteTrades(output, result.Trades); err != nil {
		logger.L.Error("Failed to write trades", "path", outputPath, "error", err)
		os.Exit(1)
	}
	logger.L.Info("Wrote trades", "path", outputPath, "trades", len(result.Trades))

	if persist {
		database.InitDB(config.Cfg.DatabasePath)
		inserted, err := database.InsertTrades(result.Trades)
		if err != nil {
			logger.L.Error("Failed to persist trades", "error", err)
			os.Exit(1)
		}
		logger.L.Info("Persisted trades to journal store", "inserted", inserted, "databasePath", config.Cfg.DatabasePath)
	}

	writers.RenderSummary(os.Stdout, result.Summary)
}

// runServe exposes the import pipeline over HTTP, mirroring the journal
// upload API: POST a CSV, get trades, warnings and a summary back.
func runServe(meta matcher.Metadata) {
	logger.L.Info("TradeJournal import server starting...")

	database.InitDB(config.Cfg.DatabasePath)

	resultCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)
	importService := services.NewImportService(meta, resultCache)
	importHandler := handlers.NewImportHandler(importService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/import", importHandler.HandleImport)
	mux.HandleFunc("GET /api/import/latest", importHandler.HandleGetLatestImport)
	mux.HandleFunc("GET /api/trades", importHandler.HandleGetTrades)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      rateLimitMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
