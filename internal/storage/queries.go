package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fightlab/go-fight-metrics/internal/model"
)

// dateLayout is the on-disk encoding for bout dates. Lexicographic order
// matches chronological order, so the (fighter, event_date) index serves
// range scans directly.
const dateLayout = "2006-01-02"

// InsertFighters bulk-inserts fighters in a transaction. Uses INSERT OR
// REPLACE for idempotency.
func (db *DB) InsertFighters(fighters []model.Fighter) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO fighters(
			name, height, weight, reach, stance, record, rank,
			slpm, str_acc, sapm, str_def, td_avg, td_acc, td_def, sub_avg
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range fighters {
		_, err = stmt.Exec(
			f.Name, f.Height, f.Weight, f.Reach, f.Stance, f.Record, f.Rank,
			f.SLpM, f.StrAcc, f.SApM, f.StrDef, f.TDAvg, f.TDAcc, f.TDDef, f.SubAvg,
		)
		if err != nil {
			return fmt.Errorf("insert fighter %q: %w", f.Name, err)
		}
	}
	return tx.Commit()
}

// InsertBouts bulk-inserts bouts in a transaction, idempotent on
// (fighter, opponent, event_date).
func (db *DB) InsertBouts(bouts []model.Bout) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bouts(
			fighter, opponent, event_date, outcome, method, round, time, knockdowns,
			sig_str, total_str, head_str, body_str, leg_str, takedowns, sub_att, ctrl
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bouts {
		_, err = stmt.Exec(
			b.Fighter, b.Opponent, b.Date.Format(dateLayout), string(b.Outcome),
			b.Method, b.Round, b.Time, b.Knockdowns,
			b.SigStr, b.TotalStr, b.HeadStr, b.BodyStr, b.LegStr,
			b.Takedowns, b.SubAtt, b.Ctrl,
		)
		if err != nil {
			return fmt.Errorf("insert bout %s vs %s: %w", b.Fighter, b.Opponent, err)
		}
	}
	return tx.Commit()
}

// AllFighters returns every stored fighter ordered by name.
func (db *DB) AllFighters() ([]model.Fighter, error) {
	rows, err := db.conn.Query(`
		SELECT name, height, weight, reach, stance, record, rank,
		       slpm, str_acc, sapm, str_def, td_avg, td_acc, td_def, sub_avg
		FROM fighters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Fighter
	for rows.Next() {
		var f model.Fighter
		if err := rows.Scan(
			&f.Name, &f.Height, &f.Weight, &f.Reach, &f.Stance, &f.Record, &f.Rank,
			&f.SLpM, &f.StrAcc, &f.SApM, &f.StrDef, &f.TDAvg, &f.TDAcc, &f.TDDef, &f.SubAvg,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetFighter returns the fighter with the given name, or nil if absent.
func (db *DB) GetFighter(name string) (*model.Fighter, error) {
	var f model.Fighter
	err := db.conn.QueryRow(`
		SELECT name, height, weight, reach, stance, record, rank,
		       slpm, str_acc, sapm, str_def, td_avg, td_acc, td_def, sub_avg
		FROM fighters WHERE name = ?`, name).
		Scan(&f.Name, &f.Height, &f.Weight, &f.Reach, &f.Stance, &f.Record, &f.Rank,
			&f.SLpM, &f.StrAcc, &f.SApM, &f.StrDef, &f.TDAvg, &f.TDAcc, &f.TDDef, &f.SubAvg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// AllBouts returns every stored bout ordered by date ascending.
func (db *DB) AllBouts() ([]model.Bout, error) {
	return db.queryBouts(`
		SELECT fighter, opponent, event_date, outcome, method, round, time, knockdowns,
		       sig_str, total_str, head_str, body_str, leg_str, takedowns, sub_att, ctrl
		FROM bouts ORDER BY event_date`)
}

// BoutsForFighter returns the fighter's bouts ordered by date descending.
func (db *DB) BoutsForFighter(name string) ([]model.Bout, error) {
	return db.queryBouts(`
		SELECT fighter, opponent, event_date, outcome, method, round, time, knockdowns,
		       sig_str, total_str, head_str, body_str, leg_str, takedowns, sub_att, ctrl
		FROM bouts WHERE fighter = ? ORDER BY event_date DESC`, name)
}

func (db *DB) queryBouts(query string, args ...any) ([]model.Bout, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bout
	for rows.Next() {
		var b model.Bout
		var dateStr, outcomeStr string
		if err := rows.Scan(
			&b.Fighter, &b.Opponent, &dateStr, &outcomeStr, &b.Method, &b.Round,
			&b.Time, &b.Knockdowns,
			&b.SigStr, &b.TotalStr, &b.HeadStr, &b.BodyStr, &b.LegStr,
			&b.Takedowns, &b.SubAtt, &b.Ctrl,
		); err != nil {
			return nil, err
		}
		b.Date, _ = time.Parse(dateLayout, dateStr)
		b.Outcome = model.ParseOutcome(outcomeStr)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Overview summarizes the store's contents.
type Overview struct {
	Fighters  int
	Bouts     int
	FirstBout string
	LastBout  string
}

// GetOverview returns store-wide counts and the covered date range.
func (db *DB) GetOverview() (*Overview, error) {
	var o Overview
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM fighters").Scan(&o.Fighters); err != nil {
		return nil, err
	}
	var first, last sql.NullString
	err := db.conn.QueryRow(`
		SELECT COUNT(1), MIN(event_date), MAX(event_date) FROM bouts`).
		Scan(&o.Bouts, &first, &last)
	if err != nil {
		return nil, err
	}
	o.FirstBout, o.LastBout = first.String, last.String
	return &o, nil
}
