// Package services contains application services for the tripmate client.
// This file defines the session manager: hydrate, login, signup, logout and
// the development bypass, with best-effort persistence of the session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrijs2005/tripmate/internal/client/client"
	"github.com/dmitrijs2005/tripmate/internal/client/models"
	"github.com/dmitrijs2005/tripmate/internal/client/storage"
	"github.com/dmitrijs2005/tripmate/internal/common"
	"github.com/dmitrijs2005/tripmate/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrDevBypassDisabled is returned by DevBypass outside development mode.
var ErrDevBypassDisabled = errors.New("dev bypass is disabled")

const dateLayout = "2006-01-02"

// DevUser is the fixed identity produced by DevBypass.
var DevUser = models.UserProfile{ID: "dev", Name: "Dev User", Email: "dev@example.com"}

// Session is the authentication state exposed to the UI. An empty Token
// means unauthenticated.
type Session struct {
	Token    string
	User     *models.UserProfile
	Loading  bool
	Error    string
	Hydrated bool
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool { return s.Token != "" }

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Hydrate: load the persisted session; never fails, always marks the
//     session hydrated.
//   - Login / Signup: authenticate, set token and user, persist them, then
//     enrich the profile in the background.
//   - Logout: clear the session in memory and in storage; never fails.
//   - DevBypass: install a fixed local session without the network.
//   - State: snapshot of the session.
//   - Wait: block until background enrichment finishes.
type AuthService interface {
	Hydrate(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, creds models.Credentials, details *models.ProfileDetails) error
	Logout(ctx context.Context)
	DevBypass(ctx context.Context) error
	State() Session
	TokenExpiry() (time.Time, bool)
	Wait()
}

type AuthOption func(*authService)

// WithDevMode enables DevBypass.
func WithDevMode(enabled bool) AuthOption {
	return func(a *authService) { a.devMode = enabled }
}

// WithOnChange installs a callback invoked with a snapshot after every
// session mutation.
func WithOnChange(fn func(Session)) AuthOption {
	return func(a *authService) { a.onChange = fn }
}

func WithAuthLogger(l logging.Logger) AuthOption {
	return func(a *authService) { a.log = l }
}

// authService is the concrete AuthService backed by a remote Client and a
// key/value store.
type authService struct {
	client   client.Client
	store    storage.Storage
	log      logging.Logger
	devMode  bool
	onChange func(Session)

	mu      sync.Mutex
	session Session

	// storeMu orders writes to the store so a late enrichment cannot
	// resurrect a session that was logged out meanwhile.
	storeMu sync.Mutex
	wg      sync.WaitGroup
}

// NewAuthService constructs an AuthService bound to the given API client
// and store.
func NewAuthService(c client.Client, store storage.Storage, opts ...AuthOption) AuthService {
	a := &authService{client: c, store: store, log: logging.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) State() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return snapshot(a.session)
}

func snapshot(s Session) Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// update applies fn to the session and notifies the change callback when
// fn reports a change.
func (a *authService) update(fn func(s *Session) bool) bool {
	a.mu.Lock()
	changed := fn(&a.session)
	snap := snapshot(a.session)
	a.mu.Unlock()

	if changed && a.onChange != nil {
		a.onChange(snap)
	}
	return changed
}

func (a *authService) set(fn func(s *Session)) {
	a.update(func(s *Session) bool {
		fn(s)
		return true
	})
}

func (a *authService) Wait() { a.wg.Wait() }

// Hydrate reads auth_token and auth_user. A stored user that does not parse
// is discarded.
func (a *authService) Hydrate(ctx context.Context) {
	var (
		token string
		user  *models.UserProfile
	)

	if v, found, err := a.store.Get(ctx, common.StorageKeyToken); err != nil {
		a.log.Warn(ctx, "read stored token", "error", err)
	} else if found {
		token = v
	}

	if v, found, err := a.store.Get(ctx, common.StorageKeyUser); err != nil {
		a.log.Warn(ctx, "read stored user", "error", err)
	} else if found && v != "" {
		var u models.UserProfile
		if err := json.Unmarshal([]byte(v), &u); err != nil || u.IsZero() {
			a.log.Warn(ctx, "discarding unparsable stored user", "error", err)
		} else {
			u = u.WithDefaults()
			user = &u
		}
	}

	a.set(func(s *Session) {
		if token != "" {
			s.Token = token
		}
		if user != nil {
			s.User = user
		}
		s.Hydrated = true
	})
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := client.NewValidationError("Please enter email and password")
		a.set(func(s *Session) { s.Error = err.Error() })
		return err
	}

	a.set(func(s *Session) { s.Loading = true; s.Error = "" })
	defer a.set(func(s *Session) { s.Loading = false })

	raw, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return a.fail(err, "Login failed")
	}

	res := normalizeAuthResponse(raw)
	if res.Token == "" {
		return a.fail(client.NewAuthError("no token in login response"), "Login failed")
	}

	user := a.placeholderUser(res.Token, email)
	if res.User != nil {
		user = *res.User
	}

	a.establish(ctx, res.Token, user)
	a.enrich(ctx, res.Token)
	return nil
}

func (a *authService) Signup(ctx context.Context, creds models.Credentials, details *models.ProfileDetails) error {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateSignup(creds, details); err != nil {
		a.set(func(s *Session) { s.Error = err.Error() })
		return err
	}

	a.set(func(s *Session) { s.Loading = true; s.Error = "" })
	defer a.set(func(s *Session) { s.Loading = false })

	req := models.NewSignupRequest(creds, details)

	raw, err := a.client.Signup(ctx, req)
	if err != nil {
		return a.fail(err, "Signup failed")
	}

	res := normalizeAuthResponse(raw)
	if res.Token == "" {
		return a.fail(client.NewAuthError("no token in signup response"), "Signup failed")
	}
	if res.User == nil {
		return a.fail(client.NewAuthError("no user in signup response"), "Signup failed")
	}

	a.establish(ctx, res.Token, *res.User)
	if details != nil {
		a.pushProfile(ctx, res.Token, *details)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	a.set(func(s *Session) {
		s.Token = ""
		s.User = nil
	})

	for _, key := range []string{common.StorageKeyToken, common.StorageKeyUser} {
		if err := a.store.Remove(ctx, key); err != nil {
			a.log.Warn(ctx, "remove stored session", "key", key, "error", err)
		}
	}
}

func (a *authService) DevBypass(ctx context.Context) error {
	if !a.devMode {
		return ErrDevBypassDisabled
	}
	a.establish(ctx, common.DevToken, DevUser)
	return nil
}

// TokenExpiry returns the exp claim of the current token when it is a JWT.
func (a *authService) TokenExpiry() (time.Time, bool) {
	token := a.State().Token
	if token == "" {
		return time.Time{}, false
	}
	_, exp, ok := tokenClaims(token)
	if !ok || exp.IsZero() {
		return time.Time{}, false
	}
	return exp, true
}

// fail resets the session after a failure that happened before a token was
// obtained and records the message.
func (a *authService) fail(err error, fallback string) error {
	msg := errorMessage(err, fallback)
	a.set(func(s *Session) {
		s.Token = ""
		s.User = nil
		s.Error = msg
	})
	return err
}

func errorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// placeholderUser stands in when the login response carried no user.
func (a *authService) placeholderUser(token, email string) models.UserProfile {
	u := models.UserProfile{Email: email}
	if sub, _, ok := tokenClaims(token); ok {
		u.ID = sub
	}
	return u.WithDefaults()
}

// establish sets token and user, then persists them.
func (a *authService) establish(ctx context.Context, token string, user models.UserProfile) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	a.set(func(s *Session) {
		s.Token = token
		s.User = &user
	})
	a.persist(ctx, map[string]string{common.StorageKeyToken: token}, user)
}

// persist writes values plus the serialized user when the store is
// available. Failures are logged only.
func (a *authService) persist(ctx context.Context, values map[string]string, user models.UserProfile) {
	if !a.store.IsAvailable() {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		a.log.Warn(ctx, "serialize user", "error", err)
		return
	}
	if values == nil {
		values = map[string]string{}
	}
	values[common.StorageKeyUser] = string(raw)
	if err := storage.SetAll(ctx, a.store, values); err != nil {
		a.log.Warn(ctx, "persist session", "error", err)
	}
}

// enrich fetches the full profile with token in the background and merges
// it into the session if the session still holds the same token.
func (a *authService) enrich(ctx context.Context, token string) {
	a.background(ctx, "profile enrichment", func(ctx context.Context) (any, error) {
		return a.client.GetProfile(ctx, token)
	}, token, models.UserProfile{})
}

// pushProfile sends signup details to the profile endpoint in the
// background and merges them on success.
func (a *authService) pushProfile(ctx context.Context, token string, details models.ProfileDetails) {
	a.background(ctx, "profile update", func(ctx context.Context) (any, error) {
		return a.client.UpdateProfile(ctx, token, details)
	}, token, details.Profile())
}

func (a *authService) background(ctx context.Context, name string, call func(context.Context) (any, error), token string, base models.UserProfile) {
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		raw, err := call(ctx)
		if err != nil {
			a.log.Warn(ctx, name+" failed", "error", err)
			return
		}

		patch := base
		if fetched, ok := extractProfile(raw); ok {
			patch = patch.Merge(fetched)
		}
		if patch.IsZero() {
			a.log.Debug(ctx, name+": nothing to merge")
			return
		}
		a.mergeUser(ctx, token, patch)
	}()
}

func (a *authService) mergeUser(ctx context.Context, token string, patch models.UserProfile) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	var merged models.UserProfile
	applied := a.update(func(s *Session) bool {
		if s.Token != token || s.User == nil {
			return false
		}
		merged = s.User.Merge(patch)
		s.User = &merged
		return true
	})
	if !applied {
		a.log.Debug(ctx, "session changed, dropping profile merge")
		return
	}
	a.persist(ctx, nil, merged)
}

func validateSignup(creds models.Credentials, details *models.ProfileDetails) error {
	if creds.Email == "" || creds.Password == "" {
		return client.NewValidationError("Please enter email and password")
	}
	if creds.Confirm != "" && creds.Confirm != creds.Password {
		return client.NewValidationError("Passwords do not match.")
	}
	if details == nil {
		return nil
	}
	switch {
	case strings.TrimSpace(details.Name) == "":
		return client.NewValidationError("Please enter your full name.")
	case strings.TrimSpace(details.PhoneNumber) == "":
		return client.NewValidationError("Please enter your phone number.")
	case strings.TrimSpace(details.AadhaarNumber) == "":
		return client.NewValidationError("Please enter your Aadhaar number.")
	case details.DateOfBirth == "":
		return client.NewValidationError("Please enter your date of birth (YYYY-MM-DD).")
	case strings.TrimSpace(details.Gender) == "":
		return client.NewValidationError("Please enter your gender.")
	}
	if _, err := time.Parse(dateLayout, details.DateOfBirth); err != nil {
		return client.NewValidationError(fmt.Sprintf("Invalid date of birth %q, expected YYYY-MM-DD.", details.DateOfBirth))
	}
	return nil
}
