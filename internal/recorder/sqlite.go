package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"StockAdvisor/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so report readers do not block the watch loop's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_rows (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			report_id TEXT NOT NULL,
			code      TEXT NOT NULL,
			name      TEXT,
			price     REAL,
			currency  TEXT,
			value_krw REAL,
			rsi       REAL,
			macd      REAL,
			macd_signal REAL,
			boll_upper  REAL,
			boll_mid    REAL,
			boll_lower  REAL,
			stoch_k     REAL,
			score     REAL,
			opinion   TEXT,
			reasons   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_ts ON analysis_rows(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_code ON analysis_rows(code)`,

		`CREATE TABLE IF NOT EXISTS simulation_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			mode          TEXT,
			last_close    REAL,
			paths         INTEGER,
			days          INTEGER,
			mean_terminal REAL,
			prob_rise     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_simulation_ts ON simulation_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			period         TEXT,
			trades         INTEGER,
			final_value    REAL,
			buy_hold_value REAL,
			position_open  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps an undefined indicator value to SQL NULL.
func nullable(v model.Value) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.V, Valid: v.OK}
}

func (r *SQLiteRecorder) RecordAnalysis(recs []AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, rec := range recs {
		_, err := tx.Exec(`INSERT INTO analysis_rows
			(timestamp, report_id, code, name, price, currency, value_krw,
			 rsi, macd, macd_signal, boll_upper, boll_mid, boll_lower, stoch_k,
			 score, opinion, reasons)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			rec.Timestamp.Unix(), rec.ReportID, rec.Code, rec.Name,
			rec.Price, rec.Currency, rec.ValueKRW,
			nullable(rec.RSI), nullable(rec.MACD), nullable(rec.MACDSignal),
			nullable(rec.BollUpper), nullable(rec.BollMid), nullable(rec.BollLower),
			nullable(rec.StochK),
			rec.Score, rec.Opinion, rec.Reasons,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert analysis row %s: %w", rec.Code, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordSimulation(rec *SimulationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO simulation_runs
		(timestamp, symbol, mode, last_close, paths, days, mean_terminal, prob_rise)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.Timestamp.Unix(), rec.Symbol, rec.Mode, rec.LastClose,
		rec.Paths, rec.Days, rec.MeanTerminal, rec.ProbRise,
	)
	return err
}

func (r *SQLiteRecorder) RecordBacktest(rec *BacktestRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, symbol, period, trades, final_value, buy_hold_value, position_open)
		VALUES (?,?,?,?,?,?,?)`,
		rec.Timestamp.Unix(), rec.Symbol, rec.Period, rec.Trades,
		rec.FinalValue, rec.BuyHoldValue, rec.PositionOpen,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
