package ledger

import (
	"fmt"
	"sort"
	"sync"

	"tradepost/internal/domain"
)

// Transferor moves credits between principals. Transfer must be
// all-or-nothing: on error no balance may have changed.
type Transferor interface {
	Transfer(from, to string, amount int64) error
}

// Ledger is the authoritative listing store. One instance owns the item
// map and the id counter for the process lifetime; a mutex serializes
// every mutating operation so each one is a single atomic step. Items are
// never deleted, retirement is Active=false.
type Ledger struct {
	mu        sync.RWMutex
	items     map[int64]*domain.Item
	counter   int64
	active    map[int64]struct{} // ids with active && !sold
	bySeller  map[string][]int64 // ids in creation order
	treasury  Transferor
	observers []Observer
}

func New(treasury Transferor) *Ledger {
	return &Ledger{
		items:    make(map[int64]*domain.Item),
		active:   make(map[int64]struct{}),
		bySeller: make(map[string][]int64),
		treasury: treasury,
	}
}

// Subscribe registers an observer for all future events. Call during
// wiring, before the ledger starts serving.
func (l *Ledger) Subscribe(fn Observer) {
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

func (l *Ledger) publish(ev Event) {
	for _, fn := range l.observers {
		fn(ev)
	}
}

// List mints the next id and stores a new listing for caller.
func (l *Ledger) List(name, description string, price int64, caller string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidInput)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	l.mu.Lock()
	l.counter++
	id := l.counter
	l.items[id] = &domain.Item{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Seller:      caller,
		Sold:        false,
		Active:      true,
	}
	l.active[id] = struct{}{}
	l.bySeller[caller] = append(l.bySeller[caller], id)
	l.mu.Unlock()

	l.publish(Event{Type: EventItemListed, ItemID: id, Name: name, Price: price, Seller: caller})
	return id, nil
}

// Purchase transfers the full offered amount to the seller and marks the
// item sold. The sold flag is committed before the transfer so nothing
// reached from the transfer path can re-enter a half-done sale; if the
// transfer fails the flag is rolled back and the operation rejects.
func (l *Ledger) Purchase(id int64, caller string, offered int64) error {
	l.mu.Lock()
	it, err := l.lookup(id)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if !it.Active || it.Sold {
		l.mu.Unlock()
		return fmt.Errorf("%w: item %d", ErrInvalidState, id)
	}
	if caller == it.Seller {
		l.mu.Unlock()
		return fmt.Errorf("%w: seller cannot buy own item", ErrUnauthorized)
	}
	if offered < it.Price {
		l.mu.Unlock()
		return fmt.Errorf("%w: offered %d, asking %d", ErrInsufficientValue, offered, it.Price)
	}

	it.Sold = true
	delete(l.active, id)

	if terr := l.treasury.Transfer(caller, it.Seller, offered); terr != nil {
		it.Sold = false
		l.active[id] = struct{}{}
		l.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrTransferFailed, terr)
	}
	seller := it.Seller
	l.mu.Unlock()

	l.publish(Event{Type: EventItemPurchased, ItemID: id, Buyer: caller, Seller: seller})
	return nil
}

// Update overwrites name/description/price. Seller-only, pre-sale,
// pre-removal. No partial update on failure.
func (l *Ledger) Update(id int64, name, description string, price int64, caller string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInput)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	l.mu.Lock()
	it, err := l.lookup(id)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if !it.Active || it.Sold {
		l.mu.Unlock()
		return fmt.Errorf("%w: item %d", ErrInvalidState, id)
	}
	if caller != it.Seller {
		l.mu.Unlock()
		return fmt.Errorf("%w: only the seller may update", ErrUnauthorized)
	}
	it.Name = name
	it.Description = description
	it.Price = price
	l.mu.Unlock()

	l.publish(Event{Type: EventItemUpdated, ItemID: id, Name: name, Price: price})
	return nil
}

// Remove retires a listing. Seller-only, irreversible.
func (l *Ledger) Remove(id int64, caller string) error {
	l.mu.Lock()
	it, err := l.lookup(id)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if !it.Active || it.Sold {
		l.mu.Unlock()
		return fmt.Errorf("%w: item %d", ErrInvalidState, id)
	}
	if caller != it.Seller {
		l.mu.Unlock()
		return fmt.Errorf("%w: only the seller may remove", ErrUnauthorized)
	}
	it.Active = false
	delete(l.active, id)
	l.mu.Unlock()

	l.publish(Event{Type: EventItemRemoved, ItemID: id})
	return nil
}

// lookup requires l.mu held.
func (l *Ledger) lookup(id int64) (*domain.Item, error) {
	if id < 1 || id > l.counter {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return l.items[id], nil
}

// Item returns the full record, including sold/inactive listings.
func (l *Ledger) Item(id int64) (domain.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	it, err := l.lookup(id)
	if err != nil {
		return domain.Item{}, err
	}
	return *it, nil
}

// ItemCount returns the number of ids ever minted, not the active count.
func (l *Ledger) ItemCount() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counter
}

// Items pages over the raw history in creation order, unfiltered by
// status. Returns up to limit items starting at id offset+1, clamped so
// the last id never exceeds the counter.
func (l *Ledger) Items(offset, limit int64) []domain.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= l.counter {
		return []domain.Item{}
	}
	n := min(limit, l.counter-offset)
	out := make([]domain.Item, 0, n)
	for id := offset + 1; id <= offset+n; id++ {
		out = append(out, *l.items[id])
	}
	return out
}

// ActiveItems returns every listing that is active and unsold, ascending
// by id. Served from the incrementally maintained active index.
func (l *Ledger) ActiveItems() []domain.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]int64, 0, len(l.active))
	for id := range l.active {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, *l.items[id])
	}
	return out
}

// SellerItems returns a seller's full history, sold and retired listings
// included, ascending by id.
func (l *Ledger) SellerItems(seller string) []domain.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := l.bySeller[seller]
	out := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, *l.items[id])
	}
	return out
}
