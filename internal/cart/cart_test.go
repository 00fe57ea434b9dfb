package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id int64, qty int) Item {
	return Item{ProductID: id, Title: "product", PriceCents: 1000, Quantity: qty, ImageRef: "img"}
}

func reduceAll(c Cart, actions ...Action) Cart {
	for _, a := range actions {
		c = Reduce(c, a)
	}
	return c
}

func TestAddItemMerges(t *testing.T) {
	c := reduceAll(Cart{},
		AddItem{Item: item(7, 2)},
		AddItem{Item: item(7, 3)},
	)

	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(7), c.Items[0].ProductID)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItemKeepsStoredFields(t *testing.T) {
	first := Item{ProductID: 1, Title: "Dewormer", PriceCents: 500, Quantity: 1, ImageRef: "a"}
	later := Item{ProductID: 1, Title: "Dewormer XL", PriceCents: 900, Quantity: 2, ImageRef: "b"}

	c := reduceAll(Cart{}, AddItem{Item: first}, AddItem{Item: later})

	require.Len(t, c.Items, 1)
	assert.Equal(t, Item{ProductID: 1, Title: "Dewormer", PriceCents: 500, Quantity: 3, ImageRef: "a"}, c.Items[0])
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	c := reduceAll(Cart{},
		AddItem{Item: item(3, 1)},
		AddItem{Item: item(1, 1)},
		AddItem{Item: item(2, 1)},
		AddItem{Item: item(3, 1)},
	)

	ids := []int64{}
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestAddItemBelowOneCountsAsOne(t *testing.T) {
	c := Reduce(Cart{}, AddItem{Item: item(4, 0)})
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemoveItemIdempotent(t *testing.T) {
	start := reduceAll(Cart{}, AddItem{Item: item(1, 1)}, AddItem{Item: item(2, 4)})

	once := Reduce(start, RemoveItem{ProductID: 1})
	twice := Reduce(once, RemoveItem{ProductID: 1})

	assert.Equal(t, once, twice)
	require.Len(t, once.Items, 1)
	assert.Equal(t, int64(2), once.Items[0].ProductID)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	start := Reduce(Cart{}, AddItem{Item: item(1, 1)})
	assert.Equal(t, start, Reduce(start, RemoveItem{ProductID: 99}))
}

func TestSetQuantity(t *testing.T) {
	start := reduceAll(Cart{}, AddItem{Item: item(5, 1)}, AddItem{Item: item(6, 1)})

	c := Reduce(start, SetQuantity{ProductID: 5, Quantity: 4})
	got, ok := c.Find(5)
	require.True(t, ok)
	assert.Equal(t, 4, got.Quantity)

	c = Reduce(start, SetQuantity{ProductID: 5, Quantity: 0})
	_, ok = c.Find(5)
	assert.False(t, ok)
	assert.Len(t, c.Items, 1)

	c = Reduce(start, SetQuantity{ProductID: 6, Quantity: -3})
	_, ok = c.Find(6)
	assert.False(t, ok)

	assert.Equal(t, start, Reduce(start, SetQuantity{ProductID: 42, Quantity: 3}))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := Reduce(Cart{}, AddItem{Item: item(1, 1)})
	before := start.clone()

	_ = Reduce(start, SetQuantity{ProductID: 1, Quantity: 9})
	_ = Reduce(start, AddItem{Item: item(1, 2)})
	_ = Reduce(start, RemoveItem{ProductID: 1})

	assert.Equal(t, before, start)
}

func TestAddItemIgnoresProductIDZero(t *testing.T) {
	start := Reduce(Cart{}, AddItem{Item: item(1, 1)})

	c := Reduce(start, AddItem{Item: item(0, 2)})
	assert.Equal(t, start, c)
}

func TestClearAndHydrate(t *testing.T) {
	start := Reduce(Cart{}, AddItem{Item: item(1, 2)})
	assert.Empty(t, Reduce(start, Clear{}).Items)

	c := Reduce(start, Hydrate{Items: []Item{item(2, 1), item(2, 2), item(0, 1), item(3, 0)}})
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].ProductID)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestTotals(t *testing.T) {
	c := reduceAll(Cart{},
		AddItem{Item: Item{ProductID: 1, PriceCents: 250, Quantity: 2}},
		AddItem{Item: Item{ProductID: 2, PriceCents: 1000, Quantity: 1}},
	)
	assert.Equal(t, int64(1500), c.TotalCents())
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 2, c.Len())
}
