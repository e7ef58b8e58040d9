package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads and writes contacts in the Postgres contacts table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Contacts returns all contacts ordered by insertion time.
func (s *Store) Contacts(ctx context.Context) ([]Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, email, context, importance
		 FROM contacts
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.Name, &c.Email, &c.Context, &c.Importance); err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}
	return contacts, nil
}

// Insert adds a contact. Duplicate emails are updated in place so seeding is
// repeatable.
func (s *Store) Insert(ctx context.Context, c Contact) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (name, email, context, importance)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email)
		 DO UPDATE SET name = EXCLUDED.name, context = EXCLUDED.context, importance = EXCLUDED.importance`,
		c.Name, c.Email, c.Context, c.Importance,
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}
