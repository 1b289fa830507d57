package client

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// DefaultGateCode is the PIN the view accepts when none is configured.
const DefaultGateCode = "627426"

const (
	maxPINLength   = 6
	minFieldLength = 3
)

var (
	// ErrIncorrectPIN is returned by Unlock for a PIN that does not match the gate code.
	ErrIncorrectPIN = errors.New("incorrect PIN")
	// ErrLocked is returned by operations on a view that has not been unlocked.
	ErrLocked = errors.New("vault is locked")
	// ErrFieldTooShort is returned by Save when a field has fewer than three characters.
	ErrFieldTooShort = errors.New("all fields must be at least 3 characters")
)

// API is the subset of Client the view needs.
type API interface {
	List(ctx context.Context) ([]Credential, error)
	Create(ctx context.Context, cred Credential) (Credential, error)
	Update(ctx context.Context, cred Credential) (Credential, error)
	Delete(ctx context.Context, id string) error
	OpenSession(ctx context.Context, pin string) (Session, error)
}

// View holds the unlocked credential list of one client session.
// The gate code only hides the list locally; the server enforces access with sessions.
type View struct {
	api         API
	gateCode    string
	openSession bool

	mu          sync.Mutex
	unlocked    bool
	credentials []Credential
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithServerSession makes Unlock also open a server session with the same PIN.
func WithServerSession() ViewOption {
	return func(v *View) { v.openSession = true }
}

// NewView creates a locked view. An empty gateCode selects DefaultGateCode.
func NewView(api API, gateCode string, opts ...ViewOption) *View {
	code := NormalizePIN(gateCode)
	if code == "" {
		code = DefaultGateCode
	}
	v := &View{api: api, gateCode: code}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NormalizePIN drops non-digit characters and keeps at most six digits.
func NormalizePIN(pin string) string {
	var b strings.Builder
	for _, r := range pin {
		if b.Len() == maxPINLength {
			break
		}
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unlock compares pin with the gate code and loads the list on success.
func (v *View) Unlock(ctx context.Context, pin string) error {
	if subtle.ConstantTimeCompare([]byte(NormalizePIN(pin)), []byte(v.gateCode)) != 1 {
		return ErrIncorrectPIN
	}

	if v.openSession {
		if _, err := v.api.OpenSession(ctx, NormalizePIN(pin)); err != nil {
			return err
		}
	}

	v.mu.Lock()
	v.unlocked = true
	v.mu.Unlock()

	return v.Refresh(ctx)
}

// Unlocked reports whether Unlock succeeded.
func (v *View) Unlocked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unlocked
}

// Refresh reloads the list from the API.
func (v *View) Refresh(ctx context.Context) error {
	if !v.Unlocked() {
		return ErrLocked
	}

	credentials, err := v.api.List(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.credentials = credentials
	v.mu.Unlock()
	return nil
}

// Credentials returns a copy of the local list.
func (v *View) Credentials() []Credential {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Credential(nil), v.credentials...)
}

// Save creates the form when it has no ID and updates it otherwise.
// The saved record replaces any local entry with the same id and goes to the end of the list.
func (v *View) Save(ctx context.Context, form Credential) (Credential, error) {
	if !v.Unlocked() {
		return Credential{}, ErrLocked
	}
	for _, f := range []string{form.Site, form.Username, form.Password} {
		if len([]rune(f)) < minFieldLength {
			return Credential{}, ErrFieldTooShort
		}
	}

	var (
		saved Credential
		err   error
	)
	if form.ID != "" {
		saved, err = v.api.Update(ctx, form)
	} else {
		saved, err = v.api.Create(ctx, form)
	}
	if err != nil {
		return Credential{}, err
	}
	if saved.ID == "" {
		return Credential{}, fmt.Errorf("api returned a record without id")
	}

	v.mu.Lock()
	v.credentials = append(v.without(form.ID, saved.ID), saved)
	v.mu.Unlock()

	return saved, nil
}

// Edit returns the entry with id as a form and removes it from the local list until it is saved.
func (v *View) Edit(id string) (Credential, error) {
	if !v.Unlocked() {
		return Credential{}, ErrLocked
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.credentials {
		if c.ID == id {
			v.credentials = v.without(id)
			return c, nil
		}
	}
	return Credential{}, ErrNotFound
}

// Delete removes the credential on the server and then locally.
func (v *View) Delete(ctx context.Context, id string) error {
	if !v.Unlocked() {
		return ErrLocked
	}

	if err := v.api.Delete(ctx, id); err != nil {
		return err
	}

	v.mu.Lock()
	v.credentials = v.without(id)
	v.mu.Unlock()
	return nil
}

// without returns the list minus entries matching any non-empty id. Callers hold mu.
func (v *View) without(ids ...string) []Credential {
	out := make([]Credential, 0, len(v.credentials))
	for _, c := range v.credentials {
		drop := false
		for _, id := range ids {
			if id != "" && c.ID == id {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out
}
