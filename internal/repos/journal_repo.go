package repos

import "github.com/jmoiron/sqlx"

type JournalRepo struct{ db *sqlx.DB }

func NewJournalRepo(db *sqlx.DB) *JournalRepo { return &JournalRepo{db: db} }

type JournalRow struct {
	ID     string `db:"id" json:"id"`
	TS     string `db:"ts" json:"ts"`
	Event  string `db:"event" json:"event"`
	ItemID int64  `db:"item_id" json:"item_id"`
	Actor  string `db:"actor" json:"actor,omitempty"`
	Name   string `db:"name" json:"name,omitempty"`
	Price  int64  `db:"price" json:"price,omitempty"`
}

// Append records one ledger event. Rows are never updated or deleted.
func (r *JournalRepo) Append(id, ts, event string, itemID int64, actor, name string, price int64) error {
	_, err := r.db.Exec(`
	  INSERT INTO journal(id, ts, event, item_id, actor, name, price)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, id, ts, event, itemID, actor, name, price)
	return err
}

func (r *JournalRepo) Recent(limit int) ([]JournalRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []JournalRow
	err := r.db.Select(&out, `
		SELECT id, ts, event, item_id, COALESCE(actor,'') AS actor,
		       COALESCE(name,'') AS name, COALESCE(price,0) AS price
		FROM journal
		ORDER BY datetime(ts) DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

// ByItem returns an item's history oldest-first.
func (r *JournalRepo) ByItem(itemID int64) ([]JournalRow, error) {
	var out []JournalRow
	err := r.db.Select(&out, `
		SELECT id, ts, event, item_id, COALESCE(actor,'') AS actor,
		       COALESCE(name,'') AS name, COALESCE(price,0) AS price
		FROM journal
		WHERE item_id = ?
		ORDER BY datetime(ts), id
	`, itemID)
	return out, err
}
