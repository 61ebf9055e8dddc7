package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HirthickCoder/D3R/internal/authclient"
	"github.com/HirthickCoder/D3R/internal/clipboard"
	"github.com/HirthickCoder/D3R/internal/nav"
	"github.com/HirthickCoder/D3R/internal/session"
)

// Mode selects which of the two mutually exclusive forms is active.
type Mode string

const (
	ModeRegister Mode = "register"
	ModeLogin    Mode = "login"
)

// Copy targets for the credential display.
const (
	FieldClientID  = "id"
	FieldClientKey = "key"
)

var ErrSubmitInFlight = errors.New("auth: submit already in flight")

const (
	copiedResetDelay          = 2 * time.Second
	networkErrorMessage       = "Network error. Please ensure the backend is running."
	registrationFailedMessage = "Registration failed"
	loginFailedMessage        = "Login failed"
)

// API is the slice of the auth backend the screen uses.
type API interface {
	Register(ctx context.Context, req authclient.RegistrationRequest) (*authclient.Credentials, error)
	Login(ctx context.Context, req authclient.LoginRequest) (*authclient.Session, error)
}

type RegisterFields struct {
	Email string
	Name  string
}

type LoginFields struct {
	ClientID  string
	ClientKey string
}

// Form is the register/login screen controller: two independent form records,
// a two-variant mode selector, and busy/error state per submission.
type Form struct {
	api     API
	storage session.Store
	nav     nav.Navigator
	clip    clipboard.Writer

	Mode         Mode
	RegisterData RegisterFields
	LoginData    LoginFields

	// Credentials is populated on registration success for one-time display.
	Credentials *authclient.Credentials
	Err         string

	busy atomic.Bool

	copiedAfter time.Duration
	mu          sync.Mutex
	copiedField string
}

func NewForm(api API, storage session.Store, navigator nav.Navigator, clip clipboard.Writer) *Form {
	return &Form{
		api:         api,
		storage:     storage,
		nav:         navigator,
		clip:        clip,
		Mode:        ModeRegister,
		copiedAfter: copiedResetDelay,
	}
}

// SetCopiedResetDelay overrides how long the "copied" indicator is shown.
// Tests use it to avoid waiting the full two seconds.
func (f *Form) SetCopiedResetDelay(d time.Duration) {
	f.copiedAfter = d
}

func (f *Form) Busy() bool {
	return f.busy.Load()
}

// SubmitRegister posts the registration form. On success the issued
// credentials are held for display and the form is cleared; the screen never
// navigates away on its own.
func (f *Form) SubmitRegister(ctx context.Context) error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer f.busy.Store(false)

	f.Err = ""
	creds, err := f.api.Register(ctx, authclient.RegistrationRequest{
		Email: f.RegisterData.Email,
		Name:  f.RegisterData.Name,
	})
	if err != nil {
		f.Err = messageFor(err, registrationFailedMessage)
		return err
	}

	f.Credentials = creds
	f.RegisterData = RegisterFields{}
	return nil
}

// SubmitLogin posts the login form. On success the access token and the
// submitted client id are written to persistent storage and the screen
// navigates to the landing view exactly once.
func (f *Form) SubmitLogin(ctx context.Context) error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer f.busy.Store(false)

	f.Err = ""
	sess, err := f.api.Login(ctx, authclient.LoginRequest{
		ClientID:  f.LoginData.ClientID,
		ClientKey: f.LoginData.ClientKey,
	})
	if err != nil {
		f.Err = messageFor(err, loginFailedMessage)
		return err
	}

	if err := f.storage.Set(ctx, session.KeyAccessToken, sess.AccessToken); err != nil {
		f.Err = loginFailedMessage
		return fmt.Errorf("store access token: %w", err)
	}
	if err := f.storage.Set(ctx, session.KeyClientID, f.LoginData.ClientID); err != nil {
		f.Err = loginFailedMessage
		return fmt.Errorf("store client id: %w", err)
	}

	f.nav.Navigate(nav.RouteHome, nil)
	return nil
}

// UseCredentials moves freshly issued credentials into the login form and
// switches to the login tab. Convenience only, not a security mechanism; the
// key stays visible until navigation away.
func (f *Form) UseCredentials() bool {
	if f.Credentials == nil {
		return false
	}
	f.LoginData = LoginFields{
		ClientID:  f.Credentials.ClientID,
		ClientKey: f.Credentials.ClientKey,
	}
	f.Mode = ModeLogin
	return true
}

// Copy writes text to the clipboard and marks field as copied; the indicator
// reverts after the configured delay, independently per field.
func (f *Form) Copy(field, text string) error {
	if err := f.clip.Write(text); err != nil {
		return fmt.Errorf("copy %s: %w", field, err)
	}

	f.mu.Lock()
	f.copiedField = field
	f.mu.Unlock()

	time.AfterFunc(f.copiedAfter, func() {
		f.mu.Lock()
		if f.copiedField == field {
			f.copiedField = ""
		}
		f.mu.Unlock()
	})
	return nil
}

// CopiedField reports which field currently shows the "copied" indicator.
func (f *Form) CopiedField() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copiedField
}

func messageFor(err error, fallback string) string {
	var apiErr *authclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallback
	}
	return networkErrorMessage
}
