package store

import (
	"fmt"

	"salesdash/internal/model"
)

// Seed inserts the canonical chains, stores and products. INSERT OR IGNORE
// keeps reseeding idempotent across restarts.
func (s *Store) Seed() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range model.SeedChains() {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO chains (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
			return fmt.Errorf("failed to seed chain %s: %w", c.ID, err)
		}
	}
	for _, st := range model.SeedStores() {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO stores (id, name, chain_id, sub_chain) VALUES (?, ?, ?, ?)`,
			st.ID, st.Name, st.ChainID, st.SubChain); err != nil {
			return fmt.Errorf("failed to seed store %s: %w", st.ID, err)
		}
	}
	for _, p := range model.SeedProducts() {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO products (id, name, category) VALUES (?, ?, ?)`,
			p.ID, p.Name, p.Category); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// ListChains returns all chains.
func (s *Store) ListChains() ([]model.Chain, error) {
	rows, err := s.db.Query(`SELECT id, name FROM chains ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chains: %w", err)
	}
	defer rows.Close()

	var out []model.Chain
	for rows.Next() {
		var c model.Chain
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan chain: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListStores returns the full store registry.
func (s *Store) ListStores() ([]model.CanonicalStore, error) {
	rows, err := s.db.Query(`SELECT id, name, chain_id, sub_chain FROM stores ORDER BY chain_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var out []model.CanonicalStore
	for rows.Next() {
		var st model.CanonicalStore
		if err := rows.Scan(&st.ID, &st.Name, &st.ChainID, &st.SubChain); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// CreateStore inserts a newly-discovered store and returns the record.
func (s *Store) CreateStore(st model.CanonicalStore) (model.CanonicalStore, error) {
	_, err := s.db.Exec(`INSERT INTO stores (id, name, chain_id, sub_chain) VALUES (?, ?, ?, ?)`,
		st.ID, st.Name, st.ChainID, st.SubChain)
	if err != nil {
		return model.CanonicalStore{}, fmt.Errorf("failed to create store %s: %w", st.ID, err)
	}
	return st, nil
}

// ListProducts returns the product catalogue.
func (s *Store) ListProducts() ([]model.CanonicalProduct, error) {
	rows, err := s.db.Query(`SELECT id, name, category FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var out []model.CanonicalProduct
	for rows.Next() {
		var p model.CanonicalProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
