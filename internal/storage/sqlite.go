// Package storage provides SQLite-based persistence for player profiles:
// token balances, the token ledger and the settlement archive.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Settlement is an archived reward outcome.
type Settlement struct {
	SessionID string
	Player    string
	VariantID string
	Level     int
	Score     int
	Verdict   string
	Tokens    int
	Applied   bool
	SettledAt time.Time
}

// LedgerEntry is one balance change.
type LedgerEntry struct {
	ID        int64
	Player    string
	Delta     int
	Reason    string
	Balance   int // Balance after the change
	CreatedAt time.Time
}

// Ledger entry reasons.
const (
	ReasonOpening = "opening"
	ReasonStake   = "stake"
	ReasonReward  = "reward"
	ReasonGrant   = "grant"
)

// VariantStats contains aggregated settlement statistics for a variant.
type VariantStats struct {
	VariantID  string
	Attempts   int
	Wins       int
	Losses     int
	BestScore  int
	Tokens     int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions share the store
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			player TEXT PRIMARY KEY,
			balance INTEGER NOT NULL CHECK (balance >= 0),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS token_ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			delta INTEGER NOT NULL,
			reason TEXT NOT NULL,
			balance_after INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_token_ledger_player ON token_ledger(player, id DESC);

		CREATE TABLE IF NOT EXISTS settlements (
			session_id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			variant_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			verdict TEXT NOT NULL,
			tokens INTEGER NOT NULL,
			applied INTEGER NOT NULL,
			settled_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_settlements_player ON settlements(player, settled_at DESC);
		CREATE INDEX IF NOT EXISTS idx_settlements_top ON settlements(variant_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Profile returns the wallet of one player. The profile row is created on
// first use with startingBalance tokens.
func (s *Store) Profile(player string, startingBalance int) *Profile {
	return &Profile{store: s, player: player, starting: max(startingBalance, 0)}
}

// Profile is a player's token wallet. It implements engine.ProfileStore and
// engine.SettlementRecorder.
type Profile struct {
	store    *Store
	player   string
	starting int
}

var (
	_ engine.ProfileStore       = (*Profile)(nil)
	_ engine.SettlementRecorder = (*Profile)(nil)
)

// Player returns the profile name.
func (p *Profile) Player() string { return p.player }

// ensure creates the profile row if missing. Caller runs inside tx.
func (p *Profile) ensure(ctx context.Context, tx *sql.Tx) error {
	res, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO profiles (player, balance) VALUES (?, ?)",
		p.player, p.starting,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 && p.starting > 0 {
		return p.record(ctx, tx, p.starting, ReasonOpening, p.starting)
	}
	return nil
}

func (p *Profile) record(ctx context.Context, tx *sql.Tx, delta int, reason string, after int) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO token_ledger (player, delta, reason, balance_after) VALUES (?, ?, ?, ?)",
		p.player, delta, reason, after,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write ledger: %w", err)
	}
	return nil
}

// adjust changes the balance by delta inside one transaction. A debit that
// would overdraw leaves the balance untouched and returns false.
func (p *Profile) adjust(ctx context.Context, delta int, reason string) (bool, error) {
	tx, err := p.store.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := p.ensure(ctx, tx); err != nil {
		return false, err
	}

	var balance int
	if err := tx.QueryRowContext(ctx, "SELECT balance FROM profiles WHERE player = ?", p.player).Scan(&balance); err != nil {
		return false, fmt.Errorf("storage: cannot read balance: %w", err)
	}
	if balance+delta < 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, "UPDATE profiles SET balance = ? WHERE player = ?", balance+delta, p.player); err != nil {
		return false, fmt.Errorf("storage: cannot update balance: %w", err)
	}
	if err := p.record(ctx, tx, delta, reason, balance+delta); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return true, nil
}

// AddTokens credits a reward.
func (p *Profile) AddTokens(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := p.adjust(ctx, n, ReasonReward)
	return err
}

// UseTokens debits a stake. Returns false when the balance is too low.
func (p *Profile) UseTokens(ctx context.Context, n int) (bool, error) {
	if n <= 0 {
		return true, nil
	}
	return p.adjust(ctx, -n, ReasonStake)
}

// Grant credits tokens outside of play, for example from the CLI.
func (p *Profile) Grant(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("storage: grant must be positive, got %d", n)
	}
	_, err := p.adjust(ctx, n, ReasonGrant)
	return err
}

// Balance returns the current token balance.
func (p *Profile) Balance(ctx context.Context) (int, error) {
	tx, err := p.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := p.ensure(ctx, tx); err != nil {
		return 0, err
	}
	var balance int
	if err := tx.QueryRowContext(ctx, "SELECT balance FROM profiles WHERE player = ?", p.player).Scan(&balance); err != nil {
		return 0, fmt.Errorf("storage: cannot read balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return balance, nil
}

// RecordSettlement archives an outcome. Recording the same session again
// updates the grant status.
func (p *Profile) RecordSettlement(ctx context.Context, out engine.RewardOutcome) error {
	_, err := p.store.db.ExecContext(ctx,
		`INSERT INTO settlements
		 (session_id, player, variant_id, level, score, verdict, tokens, applied, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   tokens = excluded.tokens,
		   applied = excluded.applied,
		   settled_at = excluded.settled_at`,
		out.SessionID, p.player, out.VariantID, out.Level, out.Score,
		out.Verdict.String(), out.TokensDelta, out.Applied,
		out.SettledAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record settlement: %w", err)
	}
	return nil
}

// History returns a player's settlements, newest first. An empty variantID
// matches every variant.
func (s *Store) History(ctx context.Context, player, variantID string, limit int) ([]Settlement, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, player, variant_id, level, score, verdict, tokens, applied, settled_at
		 FROM settlements
		 WHERE player = ? AND (? = '' OR variant_id = ?)
		 ORDER BY settled_at DESC, rowid DESC
		 LIMIT ?`,
		player, variantID, variantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	return scanSettlements(rows)
}

// TopScores returns the best settled scores for a variant across players.
func (s *Store) TopScores(ctx context.Context, variantID string, limit int) ([]Settlement, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, player, variant_id, level, score, verdict, tokens, applied, settled_at
		 FROM settlements
		 WHERE variant_id = ?
		 ORDER BY score DESC, settled_at ASC
		 LIMIT ?`,
		variantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanSettlements(rows)
}

func scanSettlements(rows *sql.Rows) ([]Settlement, error) {
	defer rows.Close()

	var out []Settlement
	for rows.Next() {
		var st Settlement
		var settledAt any
		if err := rows.Scan(&st.SessionID, &st.Player, &st.VariantID, &st.Level, &st.Score,
			&st.Verdict, &st.Tokens, &st.Applied, &settledAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.SettledAt = parseTime(settledAt)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Stats aggregates a player's settlements per variant.
func (s *Store) Stats(ctx context.Context, player string) (map[string]VariantStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT variant_id, COUNT(*),
		        SUM(CASE WHEN verdict = 'won' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN verdict = 'lost' THEN 1 ELSE 0 END),
		        MAX(score),
		        SUM(CASE WHEN applied THEN tokens ELSE 0 END),
		        MAX(settled_at)
		 FROM settlements
		 WHERE player = ?
		 GROUP BY variant_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]VariantStats)
	for rows.Next() {
		var st VariantStats
		var lastPlayed any
		if err := rows.Scan(&st.VariantID, &st.Attempts, &st.Wins, &st.Losses, &st.BestScore, &st.Tokens, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.VariantID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// LedgerEntries returns a player's balance changes, newest first.
func (s *Store) LedgerEntries(ctx context.Context, player string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, delta, reason, balance_after, created_at
		 FROM token_ledger
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ledger: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Delta, &e.Reason, &e.Balance, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Settlement returns one archived outcome by session ID.
func (s *Store) Settlement(ctx context.Context, sessionID string) (*Settlement, error) {
	var st Settlement
	var settledAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, player, variant_id, level, score, verdict, tokens, applied, settled_at
		 FROM settlements WHERE session_id = ?`,
		sessionID,
	).Scan(&st.SessionID, &st.Player, &st.VariantID, &st.Level, &st.Score,
		&st.Verdict, &st.Tokens, &st.Applied, &settledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query settlement: %w", err)
	}
	st.SettledAt = parseTime(settledAt)
	return &st, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
