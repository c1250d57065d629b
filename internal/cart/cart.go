package cart

import (
	"errors"
	"strings"

	"github.com/grocymate/core/internal/catalog"
)

var ErrNotInCart = errors.New("item not in cart")

// Line is the snapshot of one product in the cart. Quantity is always > 0;
// a line that would drop to zero is removed instead.
type Line struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Brand     string `json:"brand,omitempty"`
	Size      string `json:"size,omitempty"`
}

// Cart aggregates lines keyed by product id. One cart belongs to exactly one
// session; it is not safe for concurrent use and does not need to be.
type Cart struct {
	lines map[string]*Line
}

func New() *Cart {
	return &Cart{lines: map[string]*Line{}}
}

// Add merges qty into an existing line or creates one. qty <= 0 is a no-op.
func (c *Cart) Add(p catalog.Product, qty int) {
	if qty <= 0 {
		return
	}
	if ln, ok := c.lines[p.ID]; ok {
		ln.Quantity += qty
		return
	}
	c.lines[p.ID] = &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Brand:     p.Brand,
		Size:      p.Size,
	}
}

// AddLine re-adds a previously snapshotted line (reorder path).
func (c *Cart) AddLine(l Line) {
	if l.Quantity <= 0 {
		return
	}
	if ln, ok := c.lines[l.ProductID]; ok {
		ln.Quantity += l.Quantity
		return
	}
	cp := l
	c.lines[l.ProductID] = &cp
}

// Remove takes qty off a line; qty <= 0 or qty >= the current quantity
// deletes the line entirely.
func (c *Cart) Remove(productID string, qty int) error {
	ln, ok := c.lines[productID]
	if !ok {
		return ErrNotInCart
	}
	if qty <= 0 || qty >= ln.Quantity {
		delete(c.lines, productID)
		return nil
	}
	ln.Quantity -= qty
	return nil
}

// Update sets a line's quantity; qty <= 0 removes the line.
func (c *Cart) Update(productID string, qty int) error {
	if _, ok := c.lines[productID]; !ok {
		return ErrNotInCart
	}
	if qty <= 0 {
		delete(c.lines, productID)
		return nil
	}
	c.lines[productID].Quantity = qty
	return nil
}

// Find matches a line by case-insensitive name substring. Spoken sessions
// refer to cart contents by name, not id.
func (c *Cart) Find(name string) (Line, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	for _, ln := range c.lines {
		if strings.Contains(strings.ToLower(ln.Name), q) {
			return *ln, true
		}
	}
	return Line{}, false
}

// Lines returns a defensive copy; mutating it never touches the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, ln := range c.lines {
		out = append(out, *ln)
	}
	return out
}

func (c *Cart) Subtotal() int {
	total := 0
	for _, ln := range c.lines {
		total += ln.Quantity * ln.Price
	}
	return total
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Clear() { c.lines = map[string]*Line{} }
