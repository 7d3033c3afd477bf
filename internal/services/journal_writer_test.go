package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"tradepost/internal/ledger"
	"tradepost/internal/repos"
	"tradepost/internal/services"
)

func memdbJournal(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE journal(
	  id TEXT PRIMARY KEY,
	  ts TEXT NOT NULL,
	  event TEXT NOT NULL,
	  item_id INTEGER NOT NULL,
	  actor TEXT,
	  name TEXT,
	  price INTEGER
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestJournalWriterRecordsEvents(t *testing.T) {
	db := memdbJournal(t)
	journal := repos.NewJournalRepo(db)
	writer := services.NewJournalWriter(journal)

	writer.Record(ledger.Event{Type: ledger.EventItemListed, ItemID: 1, Name: "NES", Price: 199, Seller: "p-alice"})
	writer.Record(ledger.Event{Type: ledger.EventItemPurchased, ItemID: 1, Buyer: "p-bob", Seller: "p-alice"})
	writer.Record(ledger.Event{Type: ledger.EventItemListed, ItemID: 2, Name: "SNES", Price: 250, Seller: "p-alice"})

	rows, err := journal.ByItem(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows for item 1, got %d", len(rows))
	}
	if rows[0].Event != string(ledger.EventItemListed) || rows[0].Actor != "p-alice" || rows[0].Price != 199 {
		t.Fatalf("bad listed row: %+v", rows[0])
	}
	if rows[1].Event != string(ledger.EventItemPurchased) || rows[1].Actor != "p-bob" {
		t.Fatalf("purchase row must record the buyer as actor: %+v", rows[1])
	}

	recent, err := journal.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Fatalf("want 3 recent rows, got %d", len(recent))
	}
}
