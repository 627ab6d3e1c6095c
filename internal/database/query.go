package database

import (
	"database/sql"
	"time"
)

// GetRecentEvents returns the N most recent audit events
func (d *SweepDB) GetRecentEvents(limit int) ([]EventRecord, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, kind, phase, error_message
	FROM events
	ORDER BY timestamp DESC
	LIMIT ?
	`

	return d.queryEvents(query, limit)
}

// GetEventsByAction returns events filtered by action type
func (d *SweepDB) GetEventsByAction(action string) ([]EventRecord, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, kind, phase, error_message
	FROM events
	WHERE action = ?
	ORDER BY timestamp DESC
	`

	return d.queryEvents(query, action)
}

// GetEventsByPath returns events matching a path pattern
func (d *SweepDB) GetEventsByPath(pathPattern string) ([]EventRecord, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, kind, phase, error_message
	FROM events
	WHERE path LIKE ?
	ORDER BY timestamp DESC
	`

	return d.queryEvents(query, pathPattern)
}

// GetEventCountByAction returns count of events grouped by action
func (d *SweepDB) GetEventCountByAction() (map[string]int, error) {
	query := `
	SELECT action, COUNT(*)
	FROM events
	GROUP BY action
	`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}

	return counts, rows.Err()
}

// GetEventCountByKind returns count of deleted entries grouped by kind
func (d *SweepDB) GetEventCountByKind() (map[string]int, error) {
	query := `
	SELECT kind, COUNT(*)
	FROM events
	WHERE action = 'DELETE'
	GROUP BY kind
	`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}

	return counts, rows.Err()
}

// SweepStats holds aggregated statistics
type SweepStats struct {
	TotalDeleted  int
	TotalRetries  int
	TotalWarnings int
	TotalPurges   int
	ByAction      map[string]int
	ByKind        map[string]int
	StartDate     time.Time
	EndDate       time.Time
}

// GetSweepStats returns comprehensive statistics for a time period
func (d *SweepDB) GetSweepStats(days int) (*SweepStats, error) {
	since := time.Now().AddDate(0, 0, -days)
	now := time.Now()

	stats := &SweepStats{
		StartDate: since,
		EndDate:   now,
	}

	err := d.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN action = 'DELETE' THEN 1 END),
			COUNT(CASE WHEN action = 'RETRY' THEN 1 END),
			COUNT(CASE WHEN action = 'WARN' THEN 1 END),
			COUNT(CASE WHEN action = 'PURGE' THEN 1 END)
		FROM events
		WHERE timestamp >= ?
	`, since).Scan(&stats.TotalDeleted, &stats.TotalRetries, &stats.TotalWarnings, &stats.TotalPurges)
	if err != nil {
		return nil, err
	}

	stats.ByAction, err = d.GetEventCountByAction()
	if err != nil {
		return nil, err
	}

	stats.ByKind, err = d.GetEventCountByKind()
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DeleteOldRecords removes records older than specified days (for cleanup)
func (d *SweepDB) DeleteOldRecords(olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)

	result, err := d.db.Exec(`
		DELETE FROM events WHERE timestamp < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// queryEvents is a helper function to execute queries and scan results
func (d *SweepDB) queryEvents(query string, args ...interface{}) ([]EventRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var r EventRecord
		var errMsg sql.NullString

		err := rows.Scan(
			&r.ID, &r.Timestamp, &r.Action, &r.Path, &r.FileName,
			&r.Kind, &r.Phase, &errMsg,
		)
		if err != nil {
			return nil, err
		}

		if errMsg.Valid {
			r.ErrorMessage = errMsg.String
		}

		records = append(records, r)
	}

	return records, rows.Err()
}
