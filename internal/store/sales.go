package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"salesdash/internal/model"
)

// UpsertDailySales writes one batch of facts, overwriting quantity on key
// conflict. Facts for products or dates absent from the batch are never
// touched; merge must not be delete-then-insert.
func (s *Store) UpsertDailySales(facts []model.DailySalesFact) error {
	if len(facts) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_sales (sale_date, store_id, product_id, quantity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(sale_date, store_id, product_id)
		DO UPDATE SET quantity = excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range facts {
		if _, err := stmt.Exec(f.Date, f.StoreID, f.ProductID, f.Quantity); err != nil {
			return fmt.Errorf("failed to upsert fact (%s, %s, %s): %w", f.Date, f.StoreID, f.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExistingFactKeys returns the persisted fact keys for a set of dates, used
// to flag duplicates in the preview.
func (s *Store) ExistingFactKeys(dates []string) (map[model.FactKey]struct{}, error) {
	out := make(map[model.FactKey]struct{})
	if len(dates) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(dates)), ",")
	args := make([]interface{}, len(dates))
	for i, d := range dates {
		args[i] = d
	}

	rows, err := s.db.Query(
		`SELECT sale_date, store_id, product_id FROM daily_sales WHERE sale_date IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing facts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k model.FactKey
		if err := rows.Scan(&k.Date, &k.StoreID, &k.ProductID); err != nil {
			return nil, fmt.Errorf("failed to scan fact key: %w", err)
		}
		out[k] = struct{}{}
	}
	return out, rows.Err()
}

// CountFacts counts persisted facts for the exact dates and stores touched
// by an upload, for post-merge verification.
func (s *Store) CountFacts(dates, storeIDs []string) (int, error) {
	if len(dates) == 0 || len(storeIDs) == 0 {
		return 0, nil
	}

	datePh := strings.TrimSuffix(strings.Repeat("?,", len(dates)), ",")
	storePh := strings.TrimSuffix(strings.Repeat("?,", len(storeIDs)), ",")
	args := make([]interface{}, 0, len(dates)+len(storeIDs))
	for _, d := range dates {
		args = append(args, d)
	}
	for _, id := range storeIDs {
		args = append(args, id)
	}

	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM daily_sales WHERE sale_date IN (`+datePh+`) AND store_id IN (`+storePh+`)`,
		args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count facts: %w", err)
	}
	return count, nil
}

// FactRow is one persisted fact joined with its registry names, as consumed
// by the report exporter.
type FactRow struct {
	Date        string
	ChainID     string
	ChainName   string
	StoreID     string
	StoreName   string
	SubChain    string
	ProductID   string
	ProductName string
	Quantity    int
}

// ListFactRows reads facts for an inclusive date range joined with chain,
// store and product names, ordered for report output.
func (s *Store) ListFactRows(from, to string) ([]FactRow, error) {
	rows, err := s.db.Query(`
		SELECT d.sale_date, c.id, c.name, st.id, st.name, st.sub_chain, p.id, p.name, d.quantity
		FROM daily_sales d
		JOIN stores st ON st.id = d.store_id
		JOIN chains c ON c.id = st.chain_id
		JOIN products p ON p.id = d.product_id
		WHERE d.sale_date >= ? AND d.sale_date <= ?
		ORDER BY d.sale_date, c.id, st.id, p.id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query fact rows: %w", err)
	}
	defer rows.Close()

	var out []FactRow
	for rows.Next() {
		var r FactRow
		if err := rows.Scan(&r.Date, &r.ChainID, &r.ChainName, &r.StoreID, &r.StoreName,
			&r.SubChain, &r.ProductID, &r.ProductName, &r.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan fact row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetFact reads one persisted fact quantity.
func (s *Store) GetFact(key model.FactKey) (int, bool, error) {
	var qty int
	err := s.db.QueryRow(
		`SELECT quantity FROM daily_sales WHERE sale_date = ? AND store_id = ? AND product_id = ?`,
		key.Date, key.StoreID, key.ProductID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return qty, true, nil
}
