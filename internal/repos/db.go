package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure demo principals exist (idempotent; safe to run every start)
	if err := seedPrincipals(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Principals: identity plus wallet balance
CREATE TABLE IF NOT EXISTS principals(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_principals_email ON principals(LOWER(email));

-- Journal: durable copy of every ledger event, append-only
CREATE TABLE IF NOT EXISTS journal(
  id TEXT PRIMARY KEY,
  ts TEXT NOT NULL,
  event TEXT NOT NULL,
  item_id INTEGER NOT NULL,
  actor TEXT,
  name TEXT,
  price INTEGER
);
CREATE INDEX IF NOT EXISTS idx_journal_item ON journal(item_id);
CREATE INDEX IF NOT EXISTS idx_journal_ts   ON journal(ts);
`
	_, err := db.Exec(schema)
	return err
}

// seedPrincipals ensures three demo principals with opening balances exist
// (idempotent).
func seedPrincipals(db *sqlx.DB) error {
	type p struct {
		ID, Email, Name, Hash string
		Balance               int64
	}
	mk := func(id, email, name, raw string, balance int64) p {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return p{ID: id, Email: email, Name: name, Hash: string(h), Balance: balance}
	}

	principals := []p{
		mk("p-alice", "alice@tradepost.test", "Alice", "Passw0rd!", 1000),
		mk("p-bob", "bob@tradepost.test", "Bob", "Passw0rd!", 1000),
		mk("p-carol", "carol@tradepost.test", "Carol", "Passw0rd!", 1000),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range principals {
		if _, err := tx.Exec(`
			INSERT INTO principals(id,email,name,password_hash,balance)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Balance); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Println("[seed] demo principals ensured")
	return nil
}
