package cart

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes the full cart. An empty cart encodes as {"items":[]}.
func Marshal(c Cart) ([]byte, error) {
	if c.Items == nil {
		c.Items = []Item{}
	}
	return json.Marshal(c)
}

// Unmarshal decodes a stored cart. Entries that break the cart invariants
// (zero product id, quantity below one, duplicate products) are repaired
// the same way Hydrate repairs them.
func Unmarshal(data []byte) (Cart, error) {
	var raw Cart
	if err := json.Unmarshal(data, &raw); err != nil {
		return Cart{Items: []Item{}}, fmt.Errorf("decode cart: %w", err)
	}
	return Reduce(Cart{}, Hydrate{Items: raw.Items}), nil
}
