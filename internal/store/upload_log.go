package store

import (
	"fmt"
	"time"

	"salesdash/internal/model"
)

// UploadLog is one audit record of a completed upload.
type UploadLog struct {
	ID             int64        `json:"id"`
	Filename       string       `json:"filename"`
	DetectedFormat model.Format `json:"detectedFormat"`
	DateFrom       string       `json:"dateFrom"`
	DateTo         string       `json:"dateTo"`
	RowsSaved      int          `json:"rowsSaved"`
	TotalQuantity  int          `json:"totalQuantity"`
	StoreCount     int          `json:"storeCount"`
	Operator       string       `json:"operator"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// AppendUploadLog appends one audit record. The log is append-only; there is
// no update or delete path.
func (s *Store) AppendUploadLog(l UploadLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (filename, detected_format, date_from, date_to, rows_saved, total_quantity, store_count, operator)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, l.Filename, string(l.DetectedFormat), l.DateFrom, l.DateTo, l.RowsSaved, l.TotalQuantity, l.StoreCount, l.Operator)
	if err != nil {
		return 0, fmt.Errorf("failed to append upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// ListUploadLogs returns audit records, newest first.
func (s *Store) ListUploadLogs(limit int) ([]UploadLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, filename, detected_format, date_from, date_to, rows_saved, total_quantity, store_count, operator, created_at
		FROM upload_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload logs: %w", err)
	}
	defer rows.Close()

	var out []UploadLog
	for rows.Next() {
		var l UploadLog
		var format string
		if err := rows.Scan(&l.ID, &l.Filename, &format, &l.DateFrom, &l.DateTo,
			&l.RowsSaved, &l.TotalQuantity, &l.StoreCount, &l.Operator, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", err)
		}
		l.DetectedFormat = model.Format(format)
		out = append(out, l)
	}
	return out, rows.Err()
}
