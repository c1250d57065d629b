package orders

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/grocymate/core/internal/auth"
	"github.com/grocymate/core/internal/storage"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrAlreadyDelivered = errors.New("order already delivered")
)

// Store is the durable order collection plus its derived history index.
// orders.json holds the full records; orders/history.json is append-only,
// unique by order_id, and rebuilt under the same lock as every order write.
type Store struct {
	path        string
	historyPath string
	mu          sync.Mutex
	orders      map[string]Order
}

// Open loads orders.json under dir and makes sure the orders/ history
// directory exists. Missing or corrupt files load as empty.
func Open(dir string) (*Store, error) {
	ordersDir := filepath.Join(dir, "orders")
	if err := os.MkdirAll(ordersDir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{
		path:        filepath.Join(dir, "orders.json"),
		historyPath: filepath.Join(ordersDir, "history.json"),
		orders:      map[string]Order{},
	}
	ok, err := storage.ReadJSON(s.path, &s.orders)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.orders = map[string]Order{}
	}
	return s, nil
}

// save persists the collection and syncs the history index. Caller holds mu.
func (s *Store) save() error {
	if err := storage.WriteJSON(s.path, s.orders); err != nil {
		return err
	}
	slog.Info("saved orders", "path", s.path, "count", len(s.orders))

	var history struct {
		Orders []HistoryEntry `json:"orders"`
	}
	if ok, err := storage.ReadJSON(s.historyPath, &history); err != nil {
		return err
	} else if !ok {
		history.Orders = nil
	}
	existing := make(map[string]bool, len(history.Orders))
	for _, e := range history.Orders {
		existing[e.OrderID] = true
	}
	appended := false
	ids := make([]string, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids) // order ids sort chronologically
	for _, id := range ids {
		if existing[id] {
			continue
		}
		o := s.orders[id]
		history.Orders = append(history.Orders, HistoryEntry{
			OrderID:   o.OrderID,
			Timestamp: o.Timestamp,
			Status:    o.Status,
			Total:     o.Total,
		})
		appended = true
	}
	if !appended {
		return nil
	}
	return storage.WriteJSON(s.historyPath, history)
}

// Put makes an order durable. Used once per order, at confirmation.
func (s *Store) Put(o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.orders[o.OrderID]
	s.orders[o.OrderID] = o
	if err := s.save(); err != nil {
		if had {
			s.orders[o.OrderID] = prev
		} else {
			delete(s.orders, o.OrderID)
		}
		return err
	}
	return nil
}

func (s *Store) Get(orderID string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	return o, ok
}

// Advance moves an order one step along the status sequence, appending the
// previous status to its history and persisting. Terminal orders and unknown
// ids report failure without touching anything.
func (s *Store) Advance(orderID string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	nxt, ok := next(o.Status)
	if !ok {
		return Order{}, ErrAlreadyDelivered
	}
	prev := s.orders[orderID]
	at := o.LastUpdated
	if at.IsZero() {
		at = o.Timestamp
	}
	o.StatusHistory = append(o.StatusHistory, StatusChange{Status: o.Status, At: at})
	o.Status = nxt
	o.LastUpdated = time.Now().UTC()
	s.orders[orderID] = o
	if err := s.save(); err != nil {
		s.orders[orderID] = prev
		return Order{}, err
	}
	return o, nil
}

// ByCustomer lists a customer's orders newest first.
func (s *Store) ByCustomer(email string) []Order {
	email = auth.NormalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Order
	for _, o := range s.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// LastFor returns the customer's most recent order.
func (s *Store) LastFor(email string) (Order, bool) {
	all := s.ByCustomer(email)
	if len(all) == 0 {
		return Order{}, false
	}
	return all[0], true
}

// History returns the raw index rows, oldest first.
func (s *Store) History() ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var history struct {
		Orders []HistoryEntry `json:"orders"`
	}
	if _, err := storage.ReadJSON(s.historyPath, &history); err != nil {
		return nil, err
	}
	return history.Orders, nil
}
