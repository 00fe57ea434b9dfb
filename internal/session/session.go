package session

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/clientstore"
)

// Storage keys shared with the login flow.
const (
	KeyToken       = "token"
	KeyRole        = "role"
	KeyUsername    = "username"
	KeyEmail       = "email"
	KeyPhoneNumber = "phone_number"
)

var sessionKeys = []string{KeyToken, KeyRole, KeyUsername, KeyEmail, KeyPhoneNumber}

// Role is the account role the accounts service hands out at login. It is
// stored as the decimal string of the upstream role number.
type Role string

const (
	RoleNone         Role = ""
	RoleAdmin        Role = "0"
	RoleUser         Role = "1"
	RoleVeterinarian Role = "2"
)

// ParseRole maps a stored value onto the known roles. Anything unknown is
// RoleNone.
func ParseRole(s string) Role {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdmin, RoleUser, RoleVeterinarian:
		return r
	default:
		return RoleNone
	}
}

func (r Role) Name() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	case RoleVeterinarian:
		return "veterinarian"
	default:
		return "none"
	}
}

// Landing is where a browser goes right after signing in with r.
func (r Role) Landing() string {
	switch r {
	case RoleVeterinarian:
		return "/admin"
	case RoleUser:
		return "/user"
	default:
		return "/"
	}
}

// Session is what the gate looks at. An empty Token means unauthenticated.
type Session struct {
	Token string
	Role  Role
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Profile struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Login is the outcome of a successful sign-in, as written to storage.
type Login struct {
	Token string
	Role  Role
	Profile
}

// Read loads the session from storage. Read failures leave the returned
// Session unauthenticated; the error is only for reporting.
func Read(ctx context.Context, s clientstore.Storage) (Session, error) {
	token, _, err := s.GetItem(ctx, KeyToken)
	if err != nil {
		return Session{}, err
	}

	role, _, err := s.GetItem(ctx, KeyRole)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, Role: ParseRole(role)}, nil
}

// ReadProfile returns whatever display fields are present.
func ReadProfile(ctx context.Context, s clientstore.Storage) Profile {
	var p Profile
	p.Username, _, _ = s.GetItem(ctx, KeyUsername)
	p.Email, _, _ = s.GetItem(ctx, KeyEmail)
	p.PhoneNumber, _, _ = s.GetItem(ctx, KeyPhoneNumber)
	return p
}

// Write stores a fresh login. Empty profile fields are removed rather than
// written as empty strings.
func Write(ctx context.Context, s clientstore.Storage, l Login) error {
	if l.Token == "" {
		return errors.New("session: empty token")
	}

	values := map[string]string{
		KeyToken:       l.Token,
		KeyRole:        string(l.Role),
		KeyUsername:    l.Username,
		KeyEmail:       l.Email,
		KeyPhoneNumber: l.PhoneNumber,
	}

	for _, key := range sessionKeys {
		var err error
		if v := values[key]; v != "" {
			err = s.SetItem(ctx, key, v)
		} else {
			err = s.RemoveItem(ctx, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every session key and leaves other keys alone.
func Clear(ctx context.Context, s clientstore.Storage) error {
	var errs []error
	for _, key := range sessionKeys {
		if err := s.RemoveItem(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
