package main

import (
	"net/http"

	"storefront/internal/session"
)

type view struct {
	name  string
	path  string
	guard session.Guard
}

// views is the navigation table. Pages with an empty guard are public.
var views = []view{
	{name: "home", path: "/", guard: session.Public},
	{name: "login", path: "/login", guard: session.Public},
	{name: "signup", path: "/signup", guard: session.Public},
	{name: "pharmacy", path: "/pharmacy", guard: session.Public},
	{name: "cart", path: "/mycart", guard: session.Public},
	{name: "search", path: "/search", guard: session.Public},
	{name: "history", path: "/history", guard: session.Authenticated()},
	{name: "myaccount", path: "/myaccount", guard: session.Authenticated(session.RoleUser, session.RoleVeterinarian)},
	{name: "user", path: "/user", guard: session.Authenticated(session.RoleUser)},
	{name: "user", path: "/user/mainuser", guard: session.Authenticated(session.RoleUser)},
	{name: "veterinarian", path: "/veterinarian", guard: session.Authenticated(session.RoleVeterinarian)},
	{name: "veterinarian", path: "/veterinarian/admin", guard: session.Authenticated(session.RoleVeterinarian)},
	{name: "admin", path: "/admin", guard: session.Authenticated(session.RoleAdmin, session.RoleVeterinarian)},
}

type ViewResponse struct {
	View    string          `json:"view"`
	Session SessionResponse `json:"session"`
	Cart    *CartView       `json:"cart,omitempty"`
}

// viewHandler answers a page the gate let through. Layout lives in the
// frontend; the page only gets the state it renders.
func (app *application) viewHandler(v view) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bctx := getBrowsingContext(r)

		s, err := session.Read(r.Context(), bctx.Storage)
		if err != nil {
			app.logger.Warnw("session unreadable", "context", bctx.ID, "error", err)
		}

		resp := ViewResponse{
			View:    v.name,
			Session: newSessionResponse(s, session.ReadProfile(r.Context(), bctx.Storage)),
		}
		if v.name == "cart" {
			cv := app.cartView(bctx.Cart.Snapshot())
			resp.Cart = &cv
		}

		if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}
