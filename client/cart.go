package client

import "math"

// CartItem is a selected product with its quantity.
type CartItem struct {
	Product  Product
	Quantity int
}

// Cart is the session-local mapping of products to quantities. It never
// touches the server; checkout is where the two worlds would meet.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add inserts a product at quantity 1, or bumps its quantity when already
// present.
func (c *Cart) Add(p Product) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{Product: p, Quantity: 1})
}

// Remove drops the entry for a product id.
func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].Product.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets an entry's quantity; anything below 1 removes the entry.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity < 1 {
		c.Remove(id)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns the entries in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct products.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total recomputes Σ(price × quantity) on every read, rounded to cents.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}
