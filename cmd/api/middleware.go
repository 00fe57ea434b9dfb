package main

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/browsing"
	"storefront/internal/metrics"
	"storefront/internal/session"

	"github.com/google/uuid"
)

type ctxKey string

const browsingCtx ctxKey = "browsing"

const contextCookie = "sf_ctx"

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if pass == "" || len(creds) != 2 ||
				subtle.ConstantTimeCompare([]byte(creds[0]), []byte(username)) != 1 ||
				subtle.ConstantTimeCompare([]byte(creds[1]), []byte(pass)) != 1 {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BrowsingContextMiddleware resolves the browser's context from its signed
// cookie. A missing, expired or tampered cookie starts a new context.
func (app *application) BrowsingContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(contextCookie); err == nil {
			id, err = app.authenticator.Validate(c.Value)
			if err != nil {
				app.logger.Debugw("discarding browsing context cookie", "error", err)
			}
		}

		if id == "" {
			id = uuid.NewString()
			token, err := app.authenticator.Issue(id)
			if err != nil {
				app.internalServerError(w, r, err)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     contextCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(app.config.auth.token.exp.Seconds()),
				HttpOnly: true,
				Secure:   app.config.cookie.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		bctx := app.contexts.Get(r.Context(), id)
		metrics.BrowsingContexts.Set(float64(app.contexts.Len()))

		ctx := context.WithValue(r.Context(), browsingCtx, bctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession guards a page. On a redirect decision the page handler is
// never called.
func (app *application) RequireSession(route string, guard session.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bctx := getBrowsingContext(r)

			decision, _, err := session.Evaluate(r.Context(), bctx.Storage, guard)
			if err != nil {
				app.logger.Warnw("session unreadable, treating as signed out", "route", route, "error", err)
			}
			metrics.GateDecisions.WithLabelValues(route, decision.String()).Inc()

			if decision == session.Allow {
				next.ServeHTTP(w, r)
				return
			}

			// the browser navigated away, nobody is waiting for the redirect
			if r.Context().Err() != nil {
				return
			}
			http.Redirect(w, r, decision.Location(), http.StatusSeeOther)
		})
	}
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func getBrowsingContext(r *http.Request) *browsing.Context {
	bctx, _ := r.Context().Value(browsingCtx).(*browsing.Context)
	return bctx
}
