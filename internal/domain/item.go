package domain

// Item is one seller's listing on the ledger. IDs are minted by the ledger
// starting at 1 and never reused; retired listings stay in the map with
// Active=false so the full history remains auditable.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // whole credits, > 0
	Seller      string `json:"seller"`
	Sold        bool   `json:"sold"`
	Active      bool   `json:"active"`
}
