package pricing

// Rules holds the configured thresholds. Delivery and discount are evaluated
// independently: an order can qualify for either, both, or neither.
type Rules struct {
	DeliveryCharge        int
	FreeDeliveryThreshold int
	DiscountThreshold     int
	DiscountPct           int
}

type Quote struct {
	Subtotal       int `json:"subtotal"`
	DeliveryCharge int `json:"delivery_charge"`
	Discount       int `json:"discount"`
	Total          int `json:"total"`
}

// Price computes the full quote for a subtotal. Pure function.
func (r Rules) Price(subtotal int) Quote {
	q := Quote{Subtotal: subtotal}
	if subtotal < r.FreeDeliveryThreshold {
		q.DeliveryCharge = r.DeliveryCharge
	}
	if subtotal >= r.DiscountThreshold {
		q.Discount = subtotal * r.DiscountPct / 100
	}
	q.Total = subtotal + q.DeliveryCharge - q.Discount
	return q
}

// AmountToFreeDelivery reports how much more the cart needs to spend to skip
// the delivery charge; zero when it already qualifies.
func (r Rules) AmountToFreeDelivery(subtotal int) int {
	if subtotal >= r.FreeDeliveryThreshold {
		return 0
	}
	return r.FreeDeliveryThreshold - subtotal
}

// AmountToDiscount is the same question for the discount threshold.
func (r Rules) AmountToDiscount(subtotal int) int {
	if subtotal >= r.DiscountThreshold {
		return 0
	}
	return r.DiscountThreshold - subtotal
}
