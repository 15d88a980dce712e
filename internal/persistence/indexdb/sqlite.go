package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"dinercraft/internal/sim/dining"
)

// SQLiteIndex is a queryable secondary index over the tick and shift streams.
// Writes go through a buffered channel into a single writer goroutine so the
// simulation loop never blocks on the database.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqTick reqKind = iota + 1
	reqShift
)

type req struct {
	kind reqKind

	tick  dining.TickLogEntry
	shift dining.ShiftSummary
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	// NORMAL is a decent durability/perf tradeoff for a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER PRIMARY KEY,
			digest TEXT NOT NULL,
			arrivals INTEGER NOT NULL,
			events INTEGER NOT NULL,
			raw_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS shifts (
			restaurant_id TEXT NOT NULL,
			shift INTEGER NOT NULL,
			start_tick INTEGER NOT NULL,
			end_tick INTEGER NOT NULL,
			arrived INTEGER NOT NULL,
			served INTEGER NOT NULL,
			lost INTEGER NOT NULL,
			turned_away INTEGER NOT NULL,
			orders_taken INTEGER NOT NULL,
			orders_delivered INTEGER NOT NULL,
			wrong_deliveries INTEGER NOT NULL,
			food_burnt INTEGER NOT NULL,
			food_discarded INTEGER NOT NULL,
			avg_satisfaction REAL NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (restaurant_id, shift)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_end_tick ON shifts(end_tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) WriteTick(entry dining.TickLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqTick, tick: entry}:
	default:
		// Drop if the indexer falls behind; JSONL logs remain the source of truth.
	}
	return nil
}

func (s *SQLiteIndex) WriteShift(sum dining.ShiftSummary) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqShift, shift: sum}:
	default:
	}
	return nil
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertTick, _ := s.db.Prepare(`INSERT OR REPLACE INTO ticks(tick,digest,arrivals,events,raw_json) VALUES(?,?,?,?,?)`)
	insertShift, _ := s.db.Prepare(`INSERT OR REPLACE INTO shifts(
		restaurant_id,shift,start_tick,end_tick,
		arrived,served,lost,turned_away,
		orders_taken,orders_delivered,wrong_deliveries,
		food_burnt,food_discarded,avg_satisfaction,recorded_at
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	defer func() {
		if insertTick != nil {
			_ = insertTick.Close()
		}
		if insertShift != nil {
			_ = insertShift.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 2000
		commitMaxWait = 2 * time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	flushIfNeeded := func() {
		if tx == nil {
			return
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqTick:
			if insertTick == nil {
				continue
			}
			b, _ := json.Marshal(r.tick)
			if _, err := tx.Stmt(insertTick).Exec(
				int64(r.tick.Tick),
				r.tick.Digest,
				len(r.tick.Arrivals),
				len(r.tick.Events),
				string(b),
			); err != nil {
				rollback()
				continue
			}
			opCount++

		case reqShift:
			if insertShift == nil {
				continue
			}
			sum := r.shift
			if _, err := tx.Stmt(insertShift).Exec(
				sum.RestaurantID,
				sum.Shift,
				int64(sum.StartTick),
				int64(sum.EndTick),
				sum.Stats.Arrived,
				sum.Stats.Served,
				sum.Stats.Lost,
				sum.Stats.TurnedAway,
				sum.Stats.OrdersTaken,
				sum.Stats.OrdersDelivered,
				sum.Stats.WrongDeliveries,
				sum.Stats.FoodBurnt,
				sum.Stats.FoodDiscarded,
				sum.AvgSat,
				time.Now().UTC().Format(time.RFC3339Nano),
			); err != nil {
				rollback()
				continue
			}
			opCount++
		}
		flushIfNeeded()
	}

	commit()
}

// ListShifts returns the most recent shift rows for a restaurant, newest
// first.
func (s *SQLiteIndex) ListShifts(restaurantID string, limit int) ([]dining.ShiftSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT
		restaurant_id,shift,start_tick,end_tick,
		arrived,served,lost,turned_away,
		orders_taken,orders_delivered,wrong_deliveries,
		food_burnt,food_discarded,avg_satisfaction
		FROM shifts WHERE restaurant_id=? ORDER BY shift DESC LIMIT ?`, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dining.ShiftSummary
	for rows.Next() {
		var sum dining.ShiftSummary
		var start, end int64
		if err := rows.Scan(
			&sum.RestaurantID, &sum.Shift, &start, &end,
			&sum.Stats.Arrived, &sum.Stats.Served, &sum.Stats.Lost, &sum.Stats.TurnedAway,
			&sum.Stats.OrdersTaken, &sum.Stats.OrdersDelivered, &sum.Stats.WrongDeliveries,
			&sum.Stats.FoodBurnt, &sum.Stats.FoodDiscarded, &sum.AvgSat,
		); err != nil {
			return nil, err
		}
		sum.StartTick = uint64(start)
		sum.EndTick = uint64(end)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// TickCount reports how many tick rows are indexed. Test helper.
func (s *SQLiteIndex) TickCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM ticks`).Scan(&n)
	return n, err
}
