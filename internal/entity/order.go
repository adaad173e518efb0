package domain

// Order is the in-memory aggregate: an identifier plus a running monetary
// total. The id never changes after construction; uniqueness is the caller's
// concern. Total is a plain IEEE-754 accumulator, so call-order rounding
// applies and exact decimal arithmetic is not promised.
type Order struct {
	ID    uint64
	Total float64
}

// NewOrder returns a fresh Order with a zero total. Never fails.
func NewOrder(id uint64) Order {
	return Order{ID: id, Total: 0.0}
}

// AddItem adds price to the running total. The price is taken as-is: zero,
// negative (refunds), NaN and infinities all flow into Total unchecked.
// AddItem accumulates rather than sets; two calls with the same price double
// the contribution.
func (o *Order) AddItem(price float64) {
	o.Total += price
}
