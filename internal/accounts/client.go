// Package accounts talks to the upstream accounts service that owns users,
// passwords and access tokens.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/session"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("accounts: invalid email or password")
	ErrUnavailable        = errors.New("accounts: service unavailable")
	ErrInvalidResponse    = errors.New("accounts: invalid response")
)

// APIError is a non-2xx answer from the accounts service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("accounts: status %d: %s", e.Status, e.Message)
}

// callerGoneError marks a request abandoned by its caller. It says nothing
// about the accounts service, so the breaker does not count it.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string { return e.err.Error() }
func (e *callerGoneError) Unwrap() error { return e.err }

func breakerSuccess(err error) bool {
	var gone *callerGoneError
	return err == nil || errors.As(err, &gone)
}

type Config struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

type Client struct {
	http    *resty.Client
	cb      *gobreaker.CircuitBreaker
	baseURL string
	logger  *zap.SugaredLogger
}

func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "accounts",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		http:    resty.New().SetTimeout(cfg.Timeout),
		cb:      cb,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access      string      `json:"access"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        json.Number `json:"role"`
	PhoneNumber string      `json:"phone_number"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Login exchanges credentials for an access token and the account's
// display fields.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Login, error) {
	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("X-Request-ID", uuid.NewString()).
			SetBody(loginRequest{Email: email, Password: password}).
			Post(c.baseURL + "/api/auth/login/")
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &callerGoneError{err: ctxErr}
			}
			return nil, fmt.Errorf("login request: %w", err)
		}

		status := resp.StatusCode()
		if status >= http.StatusInternalServerError {
			return nil, parseAPIError(status, resp.Body())
		}
		// client errors say nothing about the service's health
		if status != http.StatusOK {
			return parseAPIError(status, resp.Body()), nil
		}
		return resp.Body(), nil
	})
	if err != nil {
		var gone *callerGoneError
		if errors.As(err, &gone) {
			return nil, gone.err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, err
	}

	if apiErr, ok := result.(*APIError); ok {
		if apiErr.Status == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, apiErr
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return parseLogin(body)
}

func parseLogin(body []byte) (*session.Login, error) {
	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.Access == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrInvalidResponse)
	}

	role := session.RoleNone
	if n, err := strconv.Atoi(out.Role.String()); err == nil {
		role = session.ParseRole(strconv.Itoa(n))
	}

	return &session.Login{
		Token: out.Access,
		Role:  role,
		Profile: session.Profile{
			Username:    out.Username,
			Email:       out.Email,
			PhoneNumber: out.PhoneNumber,
		},
	}, nil
}

func parseAPIError(status int, body []byte) *APIError {
	var e errorResponse
	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &e); err == nil {
		switch {
		case e.Error != "":
			msg = e.Error
		case e.Detail != "":
			msg = e.Detail
		}
	}
	return &APIError{Status: status, Message: msg}
}
