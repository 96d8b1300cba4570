package db

import (
	"fmt"
	"time"

	"github.com/banshee-data/elevation.report/internal/transect"
)

// ImportBatch records one CSV import for provenance.
type ImportBatch struct {
	BatchID      string    `json:"batch_id"`
	Source       string    `json:"source"`
	RecordCount  int       `json:"record_count"`
	SkippedCount int       `json:"skipped_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// InsertSurveyRecords stores a batch of raw survey records in one
// transaction. Insertion order is preserved by the autoincrement key, so a
// later LoadSurveyRecords returns records in original input order.
func (db *DB) InsertSurveyRecords(batchID string, records []transect.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO survey_record (batch_id, site, year, dist_along, elevation)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(batchID, rec.Site, rec.Year, rec.DistAlong, rec.Elevation); err != nil {
			return fmt.Errorf("failed to insert survey record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit survey records: %w", err)
	}
	return nil
}

// LoadSurveyRecords returns every stored survey record in insertion order.
func (db *DB) LoadSurveyRecords() ([]transect.Record, error) {
	rows, err := db.Query(`
		SELECT site, year, dist_along, elevation
		FROM survey_record
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey records: %w", err)
	}
	defer rows.Close()

	var records []transect.Record
	for rows.Next() {
		var rec transect.Record
		if err := rows.Scan(&rec.Site, &rec.Year, &rec.DistAlong, &rec.Elevation); err != nil {
			return nil, fmt.Errorf("failed to scan survey record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey records: %w", err)
	}

	return records, nil
}

// DeleteSurveyRecords removes all stored survey records. Used when an import
// replaces the dataset wholesale.
func (db *DB) DeleteSurveyRecords() error {
	if _, err := db.Exec(`DELETE FROM survey_record`); err != nil {
		return fmt.Errorf("failed to delete survey records: %w", err)
	}
	return nil
}

// RecordImportBatch stores the bookkeeping row for one import.
func (db *DB) RecordImportBatch(batch *ImportBatch) error {
	_, err := db.Exec(`
		INSERT INTO import_batch (batch_id, source, record_count, skipped_count)
		VALUES (?, ?, ?, ?)
	`, batch.BatchID, batch.Source, batch.RecordCount, batch.SkippedCount)
	if err != nil {
		return fmt.Errorf("failed to record import batch: %w", err)
	}
	return nil
}

// ListImportBatches returns the most recent import batches, newest first.
func (db *DB) ListImportBatches(limit int) ([]ImportBatch, error) {
	rows, err := db.Query(`
		SELECT batch_id, source, record_count, skipped_count, created_at
		FROM import_batch
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var batch ImportBatch
		if err := rows.Scan(&batch.BatchID, &batch.Source, &batch.RecordCount,
			&batch.SkippedCount, &batch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import batches: %w", err)
	}

	return batches, nil
}
