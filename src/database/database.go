package database

import (
	"database/sql"
	stdlog "log"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ornge-julius/TradeJournal-2/src/logger"
	"github.com/ornge-julius/TradeJournal-2/src/models"
	"github.com/ornge-julius/TradeJournal-2/src/utils"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id            TEXT PRIMARY KEY,
	symbol        TEXT    NOT NULL,
	position_type INTEGER NOT NULL,
	entry_price   REAL    NOT NULL,
	exit_price    REAL    NOT NULL,
	quantity      INTEGER NOT NULL,
	entry_date    TEXT    NOT NULL,
	exit_date     TEXT    NOT NULL,
	source        TEXT,
	reasoning     TEXT,
	result        INTEGER NOT NULL,
	notes         TEXT,
	account_id    TEXT,
	user_id       TEXT,
	profit        REAL    NOT NULL,
	option        TEXT,
	created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
CREATE INDEX IF NOT EXISTS idx_trades_exit_date ON trades(exit_date);
`

// InitDB opens the SQLite journal store and ensures its schema.
func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}
	DB = db

	if _, err := DB.Exec(schema); err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	}
}

// InsertTrades stores trades in one transaction, assigning each row a
// fresh UUID. Returns the number of rows inserted.
func InsertTrades(trades []models.Trade) (int, error) {
	tx, err := DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO trades (
		id, symbol, position_type, entry_price, exit_price, quantity,
		entry_date, exit_date, source, reasoning, result, notes,
		account_id, user_id, profit, option
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, trade := range trades {
		_, err := stmt.Exec(
			uuid.New().String(),
			trade.Symbol,
			int(trade.PositionType),
			trade.EntryPrice,
			trade.ExitPrice,
			trade.Quantity,
			utils.FormatTimestamp(trade.EntryDate),
			utils.FormatTimestamp(trade.ExitDate),
			trade.Source,
			trade.Reasoning,
			int(trade.Result),
			trade.Notes,
			trade.AccountID,
			trade.UserID,
			trade.Profit,
			trade.Option,
		)
		if err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListTrades returns all stored trades ordered by exit date.
func ListTrades() ([]models.Trade, error) {
	rows, err := DB.Query(`SELECT symbol, position_type, entry_price, exit_price,
		quantity, entry_date, exit_date, source, reasoning, result, notes,
		account_id, user_id, profit, option
		FROM trades ORDER BY exit_date, entry_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var positionType, result int
		var entryDate, exitDate string
		if err := rows.Scan(&t.Symbol, &positionType, &t.EntryPrice, &t.ExitPrice,
			&t.Quantity, &entryDate, &exitDate, &t.Source, &t.Reasoning, &result,
			&t.Notes, &t.AccountID, &t.UserID, &t.Profit, &t.Option); err != nil {
			return nil, err
		}
		t.PositionType = models.PositionType(positionType)
		t.Result = models.Result(result)
		if t.EntryDate, err = utils.ParseTimestamp(entryDate); err != nil {
			return nil, err
		}
		if t.ExitDate, err = utils.ParseTimestamp(exitDate); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
