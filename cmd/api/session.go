package main

import (
	"errors"
	"net/http"

	"storefront/internal/accounts"
	"storefront/internal/cart"
	"storefront/internal/metrics"
	"storefront/internal/session"
)

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

// SessionResponse is what the browser knows about its own session. The
// token itself never leaves storage.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Role          string          `json:"role,omitempty"`
	RoleName      string          `json:"role_name,omitempty"`
	Profile       session.Profile `json:"profile"`
	Landing       string          `json:"landing,omitempty"`
}

func newSessionResponse(s session.Session, p session.Profile) SessionResponse {
	resp := SessionResponse{Authenticated: s.Authenticated(), Profile: p}
	if s.Authenticated() && s.Role != session.RoleNone {
		resp.Role = string(s.Role)
		resp.RoleName = s.Role.Name()
	}
	return resp
}

// getSessionHandler godoc
//
//	@Summary		Current session
//	@Description	Reports whether this browser is signed in, its role and display fields
//	@Tags			session
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Router			/session [get]
func (app *application) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	bctx := getBrowsingContext(r)

	s, err := session.Read(r.Context(), bctx.Storage)
	if err != nil {
		app.logger.Warnw("session unreadable", "context", bctx.ID, "error", err)
	}

	app.jsonResponse(w, http.StatusOK, newSessionResponse(s, session.ReadProfile(r.Context(), bctx.Storage)))
}

// loginHandler godoc
//
//	@Summary		Sign in
//	@Description	Exchanges credentials with the accounts service and stores the session for this browser
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"User credentials"
//	@Success		200		{object}	SessionResponse
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		429		{object}	error
//	@Failure		503		{object}	error
//	@Router			/session/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	login, err := app.accounts.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		var apiErr *accounts.APIError
		switch {
		case errors.Is(err, accounts.ErrInvalidCredentials):
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			app.unauthorizedErrorResponse(w, r, err)
		case errors.Is(err, accounts.ErrUnavailable):
			metrics.LoginAttempts.WithLabelValues("unavailable").Inc()
			app.serviceUnavailableResponse(w, r, err)
		case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError:
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			app.badRequestResponse(w, r, errors.New(apiErr.Message))
		default:
			metrics.LoginAttempts.WithLabelValues("error").Inc()
			app.badGatewayResponse(w, r, err)
		}
		return
	}

	bctx := getBrowsingContext(r)
	if err := session.Write(r.Context(), bctx.Storage, *login); err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		app.internalServerError(w, r, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()

	app.logger.Infow("signed in", "context", bctx.ID, "role", login.Role.Name())

	s := session.Session{Token: login.Token, Role: login.Role}
	resp := newSessionResponse(s, login.Profile)
	resp.Landing = login.Role.Landing()
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary		Sign out
//	@Description	Removes the stored session and empties the cart
//	@Tags			session
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Router			/session/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	bctx := getBrowsingContext(r)

	if err := session.Clear(r.Context(), bctx.Storage); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.dispatch(r, cart.Clear{})

	// the next request reopens the context from the storage cleared above
	app.contexts.Forget(bctx.ID)
	metrics.BrowsingContexts.Set(float64(app.contexts.Len()))

	app.jsonResponse(w, http.StatusOK, newSessionResponse(session.Session{}, session.Profile{}))
}
