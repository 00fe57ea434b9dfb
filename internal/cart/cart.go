// Package cart holds a browser's shopping cart. The cart is a plain value
// changed only by reducing actions over it; Store owns the current value
// and mirrors every change to client storage.
package cart

type Item struct {
	ProductID  int64  `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	ImageRef   string `json:"image,omitempty"`
}

// Cart keeps at most one item per product, in insertion order.
type Cart struct {
	Items []Item `json:"items"`
}

func (c Cart) Len() int {
	return len(c.Items)
}

// Count is the number of units across all items.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) TotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}

func (c Cart) Find(productID int64) (Item, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Items[i], true
	}
	return Item{}, false
}

func (c Cart) index(productID int64) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Action is one of AddItem, RemoveItem, SetQuantity, Clear or Hydrate.
type Action interface {
	Name() string
	apply(c Cart) Cart
}

// AddItem merges into an existing entry by summing quantities; the stored
// title, price and image win over the incoming ones. Product id 0 names no
// product and is ignored.
type AddItem struct {
	Item Item
}

// RemoveItem is a no-op when the product is not in the cart.
type RemoveItem struct {
	ProductID int64
}

// SetQuantity removes the item when Quantity <= 0.
type SetQuantity struct {
	ProductID int64
	Quantity  int
}

// Clear empties the cart after checkout or logout.
type Clear struct{}

// Hydrate replaces the cart with items read back from storage.
type Hydrate struct {
	Items []Item
}

func (AddItem) Name() string     { return "add_item" }
func (RemoveItem) Name() string  { return "remove_item" }
func (SetQuantity) Name() string { return "set_quantity" }
func (Clear) Name() string       { return "clear" }
func (Hydrate) Name() string     { return "hydrate" }

// Reduce returns the cart that results from applying a to c. c is never
// modified.
func Reduce(c Cart, a Action) Cart {
	return a.apply(c.clone())
}

func (a AddItem) apply(c Cart) Cart {
	item := a.Item
	if item.ProductID == 0 {
		return c
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	if i := c.index(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return c
	}
	c.Items = append(c.Items, item)
	return c
}

func (a RemoveItem) apply(c Cart) Cart {
	if i := c.index(a.ProductID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	return c
}

func (a SetQuantity) apply(c Cart) Cart {
	if a.Quantity <= 0 {
		return RemoveItem{ProductID: a.ProductID}.apply(c)
	}
	if i := c.index(a.ProductID); i >= 0 {
		c.Items[i].Quantity = a.Quantity
	}
	return c
}

func (Clear) apply(Cart) Cart {
	return Cart{Items: []Item{}}
}

func (a Hydrate) apply(Cart) Cart {
	c := Cart{Items: []Item{}}
	for _, it := range a.Items {
		if it.Quantity < 1 {
			continue
		}
		c = AddItem{Item: it}.apply(c)
	}
	return c
}
