package main

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/cart"
	"storefront/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type CartLine struct {
	ProductID      int64  `json:"product_id"`
	Title          string `json:"title"`
	PriceCents     int64  `json:"price_cents"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"image_url,omitempty"`
	LineTotalCents int64  `json:"line_total_cents"`
}

type CartView struct {
	Items      []CartLine `json:"items"`
	Count      int        `json:"count"`
	TotalCents int64      `json:"total_cents"`
}

func (app *application) cartView(c cart.Cart) CartView {
	v := CartView{
		Items:      make([]CartLine, 0, len(c.Items)),
		Count:      c.Count(),
		TotalCents: c.TotalCents(),
	}
	for _, it := range c.Items {
		v.Items = append(v.Items, CartLine{
			ProductID:      it.ProductID,
			Title:          it.Title,
			PriceCents:     it.PriceCents,
			Quantity:       it.Quantity,
			ImageURL:       app.images.URL(it.ImageRef),
			LineTotalCents: it.PriceCents * int64(it.Quantity),
		})
	}
	return v
}

func (app *application) dispatch(r *http.Request, a cart.Action) cart.Cart {
	metrics.CartActions.WithLabelValues(a.Name()).Inc()
	return getBrowsingContext(r).Cart.Dispatch(r.Context(), a)
}

func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid productID")
	}
	return id, nil
}

// getCartHandler godoc
//
//	@Summary		Get cart
//	@Description	Returns this browser's cart
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartView
//	@Router			/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	c := getBrowsingContext(r).Cart.Snapshot()
	app.jsonResponse(w, http.StatusOK, app.cartView(c))
}

type AddCartItemPayload struct {
	ProductID  int64  `json:"product_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=255"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=999"`
	ImageRef   string `json:"image_ref" validate:"max=2048"`
}

// addCartItemHandler godoc
//
//	@Summary		Add item
//	@Description	Adds a product; adding a product already in the cart increases its quantity
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		AddCartItemPayload	true	"Item"
//	@Success		201		{object}	CartView
//	@Failure		400		{object}	error
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var in AddCartItemPayload
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := app.dispatch(r, cart.AddItem{Item: cart.Item{
		ProductID:  in.ProductID,
		Title:      in.Title,
		PriceCents: in.PriceCents,
		Quantity:   in.Quantity,
		ImageRef:   in.ImageRef,
	}})
	app.jsonResponse(w, http.StatusCreated, app.cartView(c))
}

type UpdateCartItemPayload struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// updateCartItemHandler godoc
//
//	@Summary		Set quantity
//	@Description	Sets the quantity of a product; zero or less removes it, unknown products are ignored
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		int						true	"Product ID"
//	@Param			payload		body		UpdateCartItemPayload	true	"Quantity"
//	@Success		200			{object}	CartView
//	@Failure		400			{object}	error
//	@Router			/cart/items/{productID} [patch]
func (app *application) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var in UpdateCartItemPayload
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := app.dispatch(r, cart.SetQuantity{ProductID: productID, Quantity: *in.Quantity})
	app.jsonResponse(w, http.StatusOK, app.cartView(c))
}

// removeCartItemHandler godoc
//
//	@Summary		Remove item
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path		int	true	"Product ID"
//	@Success		200			{object}	CartView
//	@Failure		400			{object}	error
//	@Router			/cart/items/{productID} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := app.dispatch(r, cart.RemoveItem{ProductID: productID})
	app.jsonResponse(w, http.StatusOK, app.cartView(c))
}

// clearCartHandler godoc
//
//	@Summary		Clear cart
//	@Description	Empties the cart, used after checkout
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartView
//	@Router			/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	c := app.dispatch(r, cart.Clear{})
	app.jsonResponse(w, http.StatusOK, app.cartView(c))
}
