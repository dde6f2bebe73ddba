package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ornge-julius/TradeJournal-2/src/config"
	"github.com/ornge-julius/TradeJournal-2/src/database"
	"github.com/ornge-julius/TradeJournal-2/src/logger"
	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/services"
	"github.com/ornge-julius/TradeJournal-2/src/utils"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(service services.ImportService) *ImportHandler {
	return &ImportHandler{importService: service}
}

// HandleImport accepts a multipart CSV upload, runs the import pipeline
// and responds with the trades, warnings and summary. With persist=true
// the matched trades are also written to the journal store.
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	sourceFormat := r.FormValue("source")
	if sourceFormat == "" {
		sourceFormat = config.Cfg.SourceFormat
	}

	logger.L.Info("Processing import request", "filename", fileHeader.Filename, "sourceFormat", sourceFormat)
	result, err := h.importService.ImportFromReader(file, sourceFormat)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownSource):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrParsingFailed):
			logger.L.Warn("Import failed due to CSV parsing errors", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing CSV file: %v", err), http.StatusBadRequest)
		default:
			logger.L.Error("Internal error processing import", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file.", http.StatusInternalServerError)
		}
		return
	}

	if r.FormValue("persist") == "true" && database.DB != nil {
		inserted, err := database.InsertTrades(result.Trades)
		if err != nil {
			logger.L.Error("Failed to persist imported trades", "error", err)
			utils.SendJSONError(w, "Import succeeded but persisting trades failed.", http.StatusInternalServerError)
			return
		}
		logger.L.Info("Persisted imported trades", "inserted", inserted)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for import result", "error", err)
	}
}

// HandleGetTrades returns every trade currently in the journal store.
func (h *ImportHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	if database.DB == nil {
		utils.SendJSONError(w, "journal store not configured", http.StatusServiceUnavailable)
		return
	}
	trades, err := database.ListTrades()
	if err != nil {
		logger.L.Error("Error listing stored trades", "error", err)
		utils.SendJSONError(w, "Error retrieving stored trades.", http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trades); err != nil {
		logger.L.Error("Error encoding JSON response for trades", "error", err)
	}
}

// HandleGetLatestImport returns the cached result of the most recent
// import for a source format, if any.
func (h *ImportHandler) HandleGetLatestImport(w http.ResponseWriter, r *http.Request) {
	sourceFormat := r.URL.Query().Get("source")
	if sourceFormat == "" {
		sourceFormat = config.Cfg.SourceFormat
	}
	result, found := h.importService.LatestResult(sourceFormat)
	if !found {
		utils.SendJSONError(w, fmt.Sprintf("no cached import for source %q", sourceFormat), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for latest import", "error", err)
	}
}
