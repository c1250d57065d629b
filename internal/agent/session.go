package agent

import (
	"sort"
	"strings"
	"time"

	"github.com/grocymate/core/internal/cart"
	"github.com/grocymate/core/internal/catalog"
	"github.com/grocymate/core/internal/orders"
	"github.com/grocymate/core/internal/pricing"
	"github.com/grocymate/core/internal/users"
)

// Session is one conversation's state: the logged-in user, their cart, and
// at most one pending order awaiting confirmation. Never shared between
// conversations.
type Session struct {
	agent   *Agent
	user    *users.User
	cart    *cart.Cart
	pending *orders.Order

	budgetLimit   int    // 0 = none; warning only
	dietaryFilter string // "" = none; strict
}

func (a *Agent) NewSession() *Session {
	return &Session{agent: a, cart: cart.New()}
}

// CartSnapshot is the defensive view handed back after every cart mutation.
type CartSnapshot struct {
	Lines    []cart.Line `json:"lines"`
	Subtotal int         `json:"subtotal"`
}

type AddResult struct {
	CartSnapshot
	Added          cart.Line `json:"added"`
	BudgetExceeded bool      `json:"budget_exceeded,omitempty"`
	BudgetLimit    int       `json:"budget_limit,omitempty"`
}

type ConfirmResult struct {
	Order     orders.Order `json:"order"`
	Confirmed bool         `json:"confirmed"`
	EmailSent bool         `json:"email_sent"`
}

func (s *Session) snapshot() CartSnapshot {
	return CartSnapshot{Lines: s.cart.Lines(), Subtotal: s.cart.Subtotal()}
}

func (s *Session) LoggedIn() bool { return s.user != nil }

func (s *Session) User() (users.User, bool) {
	if s.user == nil {
		return users.User{}, false
	}
	return *s.user, true
}

// -------- account operations --------

// Register creates the account and logs the session in.
func (s *Session) Register(name, email, password, address, mobile string) (users.User, error) {
	u, err := s.agent.Users.Register(name, email, password, address, mobile)
	if err != nil {
		return users.User{}, err
	}
	s.user = &u
	return u, nil
}

func (s *Session) Login(email, password string) (users.User, error) {
	u, err := s.agent.Users.Authenticate(email, password)
	if err != nil {
		return users.User{}, err
	}
	s.user = &u
	return u, nil
}

// ResetPassword does not require a logged-in session; spoken flows reset
// before they can log in.
func (s *Session) ResetPassword(email, newPassword string) error {
	return s.agent.Users.ResetPassword(email, newPassword)
}

// -------- catalog operations --------

func (s *Session) FindProduct(name string) (catalog.Product, error) {
	p, ok := s.agent.Catalog.FindItem(name)
	if !ok {
		return catalog.Product{}, ErrItemNotFound
	}
	return p, nil
}

func (s *Session) Categories() []string { return s.agent.Catalog.CategoryNames() }

func (s *Session) Category(name string) (catalog.Category, bool) {
	return s.agent.Catalog.Category(name)
}

// -------- cart operations --------

func (s *Session) AddToCart(productID string, qty int) (AddResult, error) {
	if !s.LoggedIn() {
		return AddResult{}, ErrNotLoggedIn
	}
	p, ok := s.agent.Catalog.FindByID(productID)
	if !ok {
		return AddResult{}, ErrItemNotFound
	}
	if s.dietaryFilter != "" && !hasTag(p, s.dietaryFilter) {
		return AddResult{}, ErrDietaryMismatch
	}

	res := AddResult{}
	if s.budgetLimit > 0 && s.cart.Subtotal()+qty*p.Price > s.budgetLimit {
		// warning only; the item is still added
		res.BudgetExceeded = true
		res.BudgetLimit = s.budgetLimit
	}

	s.cart.Add(p, qty)
	res.CartSnapshot = s.snapshot()
	for _, ln := range res.Lines {
		if ln.ProductID == p.ID {
			res.Added = ln
			break
		}
	}
	return res, nil
}

// AddRecipe adds one of each resolvable ingredient of a recipe.
func (s *Session) AddRecipe(name string) (CartSnapshot, int, error) {
	if !s.LoggedIn() {
		return CartSnapshot{}, 0, ErrNotLoggedIn
	}
	items, serves, ok := s.agent.Catalog.RecipeIngredients(name)
	if !ok || len(items) == 0 {
		return CartSnapshot{}, 0, ErrRecipeNotFound
	}
	for _, it := range items {
		s.cart.Add(it, 1)
	}
	return s.snapshot(), serves, nil
}

// RemoveFromCart removes qty units; qty <= 0 drops the whole line.
func (s *Session) RemoveFromCart(productID string, qty int) (CartSnapshot, error) {
	if !s.LoggedIn() {
		return CartSnapshot{}, ErrNotLoggedIn
	}
	if err := s.cart.Remove(productID, qty); err != nil {
		return CartSnapshot{}, err
	}
	return s.snapshot(), nil
}

func (s *Session) UpdateQuantity(productID string, qty int) (CartSnapshot, error) {
	if !s.LoggedIn() {
		return CartSnapshot{}, ErrNotLoggedIn
	}
	if err := s.cart.Update(productID, qty); err != nil {
		return CartSnapshot{}, err
	}
	return s.snapshot(), nil
}

// FindInCart resolves a cart line by spoken name.
func (s *Session) FindInCart(name string) (cart.Line, bool) {
	return s.cart.Find(name)
}

func (s *Session) Cart() CartSnapshot { return s.snapshot() }

func (s *Session) PriceCart() pricing.Quote {
	return s.agent.Rules.Price(s.cart.Subtotal())
}

// -------- session preferences --------

// SetBudgetLimit sets an informational spend ceiling; 0 clears it.
func (s *Session) SetBudgetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.budgetLimit = limit
}

// SetDietaryFilter sets a strict tag filter; "" or "none" clears it.
func (s *Session) SetDietaryFilter(filter string) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "none" {
		filter = ""
	}
	s.dietaryFilter = filter
}

func hasTag(p catalog.Product, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// -------- checkout --------

// ReviewOrder snapshots the cart into a pending order priced by the rules.
// Nothing is persisted until ConfirmOrder(true).
func (s *Session) ReviewOrder() (orders.Order, error) {
	if !s.LoggedIn() {
		return orders.Order{}, ErrNotLoggedIn
	}
	if s.cart.IsEmpty() {
		return orders.Order{}, ErrEmptyCart
	}
	q := s.agent.Rules.Price(s.cart.Subtotal())
	now := time.Now().UTC()
	o := orders.Order{
		OrderID:         orders.NewOrderID(now),
		CustomerEmail:   s.user.Email,
		CustomerName:    s.user.Name,
		Items:           s.cart.Lines(),
		Subtotal:        q.Subtotal,
		DeliveryCharge:  q.DeliveryCharge,
		Discount:        q.Discount,
		Total:           q.Total,
		Status:          orders.StatusPendingConfirmation,
		Timestamp:       now,
		DeliveryAddress: s.user.Address,
	}
	s.pending = &o
	return o, nil
}

// ConfirmOrder settles the pending order. yes=false cancels it; yes=true
// makes it durable exactly once with status received, clears the cart and
// the pending reference, then dispatches the receipt mail off the store
// lock. A persistence failure keeps the pending order so the caller can
// retry instead of falsely confirming.
func (s *Session) ConfirmOrder(yes bool) (ConfirmResult, error) {
	if !s.LoggedIn() {
		return ConfirmResult{}, ErrNotLoggedIn
	}
	if s.pending == nil {
		return ConfirmResult{}, ErrNoPendingOrder
	}
	if !yes {
		o := *s.pending
		s.pending = nil
		return ConfirmResult{Order: o, Confirmed: false}, nil
	}

	o := *s.pending
	o.Status = orders.StatusReceived
	o.LastUpdated = time.Now().UTC()
	if err := s.agent.Orders.Put(o); err != nil {
		return ConfirmResult{}, err
	}

	s.cart.Clear()
	s.pending = nil

	sent := false
	if s.agent.Mailer != nil {
		sent = s.agent.Mailer.SendConfirmation(o, o.CustomerName)
	}
	return ConfirmResult{Order: o, Confirmed: true, EmailSent: sent}, nil
}

// -------- order queries --------

// AdvanceStatus moves an order one step along its lifecycle.
func (s *Session) AdvanceStatus(orderID string) (orders.Order, error) {
	if !s.LoggedIn() {
		return orders.Order{}, ErrNotLoggedIn
	}
	return s.agent.Orders.Advance(orderID)
}

// OrderStatus looks up one of the customer's own orders; someone else's
// order id reports not found rather than leaking its existence.
func (s *Session) OrderStatus(orderID string) (orders.Order, error) {
	if !s.LoggedIn() {
		return orders.Order{}, ErrNotLoggedIn
	}
	o, ok := s.agent.Orders.Get(orderID)
	if !ok || o.CustomerEmail != s.user.Email {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

// OrderHistory lists the customer's orders, newest first.
func (s *Session) OrderHistory() ([]orders.Order, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return s.agent.Orders.ByCustomer(s.user.Email), nil
}

// LastOrder returns the most recent order, ok=false when there is none.
func (s *Session) LastOrder() (orders.Order, bool, error) {
	if !s.LoggedIn() {
		return orders.Order{}, false, ErrNotLoggedIn
	}
	o, ok := s.agent.Orders.LastFor(s.user.Email)
	return o, ok, nil
}

// Reorder copies a previous order's lines back into the cart. orderID "" or
// "last" targets the most recent order.
func (s *Session) Reorder(orderID string) (CartSnapshot, error) {
	if !s.LoggedIn() {
		return CartSnapshot{}, ErrNotLoggedIn
	}
	var o orders.Order
	if orderID == "" || strings.EqualFold(orderID, "last") {
		last, ok := s.agent.Orders.LastFor(s.user.Email)
		if !ok {
			return CartSnapshot{}, orders.ErrNotFound
		}
		o = last
	} else {
		var err error
		o, err = s.OrderStatus(orderID)
		if err != nil {
			return CartSnapshot{}, err
		}
	}
	for _, ln := range o.Items {
		s.cart.AddLine(ln)
	}
	return s.snapshot(), nil
}

// Recommendations returns the customer's three most frequently ordered
// products still present in the catalog.
func (s *Session) Recommendations() ([]catalog.Product, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	counts := map[string]int{}
	for _, o := range s.agent.Orders.ByCustomer(s.user.Email) {
		for _, it := range o.Items {
			counts[it.ProductID] += it.Quantity
		}
	}
	type freq struct {
		id string
		n  int
	}
	ranked := make([]freq, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, freq{id, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].id < ranked[j].id
	})
	var out []catalog.Product
	for _, f := range ranked {
		if len(out) == 3 {
			break
		}
		if p, ok := s.agent.Catalog.FindByID(f.id); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// EligibilityCheck summarizes how far the cart is from a pricing threshold.
type EligibilityCheck struct {
	Quote     pricing.Quote `json:"quote"`
	Qualifies bool          `json:"qualifies"`
	Remaining int           `json:"remaining"`
}

// DeliveryCheck reports free-delivery eligibility for the current cart.
func (s *Session) DeliveryCheck() (EligibilityCheck, error) {
	if !s.LoggedIn() {
		return EligibilityCheck{}, ErrNotLoggedIn
	}
	if s.cart.IsEmpty() {
		return EligibilityCheck{}, ErrEmptyCart
	}
	q := s.PriceCart()
	return EligibilityCheck{
		Quote:     q,
		Qualifies: q.DeliveryCharge == 0,
		Remaining: s.agent.Rules.AmountToFreeDelivery(q.Subtotal),
	}, nil
}

// DiscountCheck reports discount eligibility for the current cart.
func (s *Session) DiscountCheck() (EligibilityCheck, error) {
	if !s.LoggedIn() {
		return EligibilityCheck{}, ErrNotLoggedIn
	}
	if s.cart.IsEmpty() {
		return EligibilityCheck{}, ErrEmptyCart
	}
	q := s.PriceCart()
	return EligibilityCheck{
		Quote:     q,
		Qualifies: q.Discount > 0,
		Remaining: s.agent.Rules.AmountToDiscount(q.Subtotal),
	}, nil
}
