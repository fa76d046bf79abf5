// Package sqlite persists connected calendar accounts in a local SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // database/sql driver

	"github.com/raksonibs/waffle/internal/core/domain"
	"github.com/raksonibs/waffle/internal/core/ports/driven"
)

// Ensure Store implements the port.
var _ driven.AccountStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	username    TEXT NOT NULL UNIQUE,
	strategy    TEXT NOT NULL,
	oauth       TEXT NOT NULL DEFAULT '',
	delta_token TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
`

// Store is a SQLite-backed account store.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the account database. An empty path
// uses ~/.waffle/waffle.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("sqlite: resolve home directory: %w", err)
		}
		dir := filepath.Join(home, ".waffle")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create data directory: %w", err)
		}
		path = filepath.Join(dir, "waffle.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores a new account.
func (s *Store) Create(ctx context.Context, account *domain.Account) error {
	oauth, err := encodeOAuth(account.OAuth)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, username, strategy, oauth, delta_token, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.Username, string(account.Strategy),
		oauth, account.DeltaToken, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %q: %w", account.Username, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("sqlite: insert account: %w", err)
	}
	return nil
}

// Get returns the account for a username.
func (s *Store) Get(ctx context.Context, username string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, username, strategy, oauth, delta_token, created_at, updated_at
		 FROM accounts WHERE username = ?`, username,
	)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load account: %w", err)
	}
	return account, nil
}

// List returns all connected accounts ordered by creation time.
func (s *Store) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, username, strategy, oauth, delta_token, created_at, updated_at
		 FROM accounts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate accounts: %w", err)
	}
	return accounts, nil
}

// Update persists changes to an existing account, keyed by ID so that a
// reauthentication may also rename the account's username.
func (s *Store) Update(ctx context.Context, account *domain.Account) error {
	oauth, err := encodeOAuth(account.OAuth)
	if err != nil {
		return err
	}

	account.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, username = ?, strategy = ?, oauth = ?, delta_token = ?, updated_at = ?
		 WHERE id = ?`,
		account.Name, account.Username, string(account.Strategy),
		oauth, account.DeltaToken, account.UpdatedAt, account.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("account %q: %w", account.Username, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an account.
func (s *Store) Delete(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("sqlite: delete account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("account %q: %w", username, domain.ErrNotFound)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanAccount.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		account  domain.Account
		strategy string
		oauth    string
	)
	err := row.Scan(
		&account.ID, &account.Name, &account.Username, &strategy,
		&oauth, &account.DeltaToken, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Strategy = domain.StrategyType(strategy)
	if oauth != "" {
		var bundle domain.TokenBundle
		if err := json.Unmarshal([]byte(oauth), &bundle); err != nil {
			return nil, fmt.Errorf("decode oauth bundle: %w", err)
		}
		account.OAuth = &bundle
	}
	return &account, nil
}

func encodeOAuth(bundle *domain.TokenBundle) (string, error) {
	if bundle == nil {
		return "", nil
	}
	data, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode oauth bundle: %w", err)
	}
	return string(data), nil
}

// isUniqueViolation reports whether an insert failed on the username
// uniqueness constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE")
}
