package ledger

// EventType identifies which mutating operation committed.
type EventType string

const (
	EventItemListed    EventType = "ITEM_LISTED"
	EventItemPurchased EventType = "ITEM_PURCHASED"
	EventItemUpdated   EventType = "ITEM_UPDATED"
	EventItemRemoved   EventType = "ITEM_REMOVED"
)

// Event is fired synchronously after a mutating operation commits, before
// the operation returns to its caller. Fields not relevant to the event
// type are zero: listed carries id/name/price/seller, purchased carries
// id/buyer/seller, updated carries id/name/price, removed carries id only.
type Event struct {
	Type   EventType `json:"type"`
	ItemID int64     `json:"item_id"`
	Name   string    `json:"name,omitempty"`
	Price  int64     `json:"price,omitempty"`
	Seller string    `json:"seller,omitempty"`
	Buyer  string    `json:"buyer,omitempty"`
}

// Observer receives every committed event. Observers run on the mutating
// caller's goroutine and must not invoke mutating ledger operations.
type Observer func(Event)
