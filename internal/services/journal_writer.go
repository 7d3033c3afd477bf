package services

import (
	"log"
	"time"

	"tradepost/internal/ledger"
	"tradepost/internal/repos"

	"github.com/google/uuid"
)

// JournalWriter persists every ledger event to the journal table. It is
// wired as a ledger observer at startup, so the durable history is in
// step with the in-memory map.
type JournalWriter struct {
	Journal *repos.JournalRepo
}

func NewJournalWriter(journal *repos.JournalRepo) *JournalWriter {
	return &JournalWriter{Journal: journal}
}

// Record is the ledger.Observer. Journal writes are best-effort: a failed
// append is logged but never fails the committed operation.
func (w *JournalWriter) Record(ev ledger.Event) {
	actor := ev.Seller
	if ev.Type == ledger.EventItemPurchased {
		actor = ev.Buyer
	}
	err := w.Journal.Append(
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339),
		string(ev.Type),
		ev.ItemID,
		actor,
		ev.Name,
		ev.Price,
	)
	if err != nil {
		log.Printf("[journal] append failed for %s item=%d: %v", ev.Type, ev.ItemID, err)
	}
}
