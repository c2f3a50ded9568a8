package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
)

// SQLiteRecorder keeps a run history in a SQLite database: one row per
// candidate and one per allocated position, keyed by run timestamp.
type SQLiteRecorder struct {
	db  *sql.DB
	log logging.Logger
	mu  sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log logging.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block a running screen.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS picks (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_ts         INTEGER NOT NULL,
			code           TEXT NOT NULL,
			name           TEXT,
			current_price  REAL,
			band_position  REAL,
			rsi            REAL,
			volume_ratio   REAL,
			composite_score REAL,
			action         TEXT,
			target_price   REAL,
			stop_loss      REAL,
			position_size  REAL,
			holding_period TEXT,
			risk_level     TEXT,
			reasoning      TEXT,
			volatility     REAL,
			max_drawdown   REAL,
			sharpe_ratio   REAL,
			var_95         REAL,
			analysis_date  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_run ON picks(run_ts)`,

		`CREATE TABLE IF NOT EXISTS allocations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_ts        INTEGER NOT NULL,
			rank          INTEGER NOT NULL,
			code          TEXT NOT NULL,
			name          TEXT,
			weight        REAL,
			position_size REAL,
			target_price  REAL,
			stop_loss     REAL,
			risk_level    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alloc_run ON allocations(run_ts)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(candidates []*model.ScoredCandidate, alloc *model.PortfolioAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range candidates {
		reasons := make([]string, len(c.Advice.Reasoning))
		for i, sig := range c.Advice.Reasoning {
			reasons[i] = string(sig)
		}
		if _, err := tx.Exec(`INSERT INTO picks
			(run_ts, code, name, current_price, band_position, rsi, volume_ratio,
			 composite_score, action, target_price, stop_loss, position_size,
			 holding_period, risk_level, reasoning,
			 volatility, max_drawdown, sharpe_ratio, var_95, analysis_date)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			now, c.Code, c.Name, c.CurrentPrice, c.BandPosition, c.RSI, c.VolumeRatio,
			c.CompositeScore, string(c.Advice.Action), c.Advice.TargetPrice,
			c.Advice.StopLoss, c.Advice.PositionSize,
			string(c.Advice.HoldingPeriod), string(c.Advice.RiskLevel),
			strings.Join(reasons, "|"),
			c.Risk.Volatility, c.Risk.MaxDrawdown, c.Risk.SharpeRatio, c.Risk.VaR95,
			c.AnalysisDate,
		); err != nil {
			return fmt.Errorf("insert pick %s: %w", c.Code, err)
		}
	}

	if alloc != nil {
		for i, p := range alloc.Positions {
			if _, err := tx.Exec(`INSERT INTO allocations
				(run_ts, rank, code, name, weight, position_size, target_price, stop_loss, risk_level)
				VALUES (?,?,?,?,?,?,?,?,?)`,
				now, i+1, p.Code, p.Name, p.Weight, p.PositionSize,
				p.TargetPrice, p.StopLoss, string(p.RiskLevel),
			); err != nil {
				return fmt.Errorf("insert allocation %s: %w", p.Code, err)
			}
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Infof("closing sqlite recorder")
	return r.db.Close()
}
