// ABOUTME: Two-mode credential form state machine (login / sign up)
// ABOUTME: Owns field values, required-field checks and the submission lifecycle

package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
)

// DashboardPath is where a successful login sends the user
const DashboardPath = "/dashboard"

// SignUpNotice confirms a registration; the user still has to log in
const SignUpNotice = "Account created! You can now login."

// Field names a credential input
type Field string

const (
	FieldName     Field = "name"
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// AllFields in display order
var AllFields = []Field{FieldName, FieldUsername, FieldEmail, FieldPassword}

// RequiredFields returns the fields a mode needs, in display order
func RequiredFields(mode client.Mode) []Field {
	if mode == client.ModeSignUp {
		return AllFields
	}
	return []Field{FieldUsername, FieldPassword}
}

// Label returns a human-readable field name
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Full name"
	case FieldUsername:
		return "Username"
	case FieldEmail:
		return "Email address"
	case FieldPassword:
		return "Password"
	default:
		return string(f)
	}
}

// Fields holds the entered values. They survive mode toggles.
type Fields struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Get returns one field's value
func (f Fields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldUsername:
		return f.Username
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	}
	return ""
}

// Status is the submission lifecycle state
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusFailed
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submission is the current lifecycle state; Message is set only when Failed
type Submission struct {
	Status  Status
	Message string
}

var (
	// ErrBusy is returned when an action is attempted while a submission is in flight
	ErrBusy = errors.New("a submission is already in progress")
	// ErrUnknownField is returned by UpdateField for names outside the form
	ErrUnknownField = errors.New("unknown field")
	// ErrDetached is returned once the controller's owner has gone away
	ErrDetached = errors.New("form is no longer attached")
)

// ValidationError reports a required field that is missing or malformed
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field.Label(), e.Reason)
}

// Outcome tells the caller what happened after a submission completed
type Outcome struct {
	// NavigateTo is set after a successful login
	NavigateTo string
	// Discarded is true when the result arrived for a submission that no longer applies
	Discarded bool
}

// Authenticator issues the network call for a payload
type Authenticator interface {
	Authenticate(ctx context.Context, p client.Payload) client.AuthResult
}

// State is a snapshot of the form
type State struct {
	Mode       client.Mode
	Fields     Fields
	Submission Submission
	Notice     string
}

// Controller owns the credential form state. It is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	store      session.Store
	mode       client.Mode
	fields     Fields
	submission Submission
	notice     string
	detached   bool
}

// New creates a controller in login mode with empty fields
func New(store session.Store) *Controller {
	return &Controller{store: store, mode: client.ModeLogin}
}

// State returns a snapshot of the current form state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Mode:       c.mode,
		Fields:     c.fields,
		Submission: c.submission,
		Notice:     c.notice,
	}
}

// ToggleMode flips login and sign up. A stale error or notice from the
// previous mode is cleared; field values are kept.
func (c *Controller) ToggleMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submission.Status == StatusSubmitting {
		return ErrBusy
	}
	c.mode = c.mode.Toggle()
	c.submission = Submission{Status: StatusIdle}
	c.notice = ""
	return nil
}

// UpdateField sets one field. Edits are rejected only while submitting.
func (c *Controller) UpdateField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submission.Status == StatusSubmitting {
		return ErrBusy
	}
	switch field {
	case FieldName:
		c.fields.Name = value
	case FieldUsername:
		c.fields.Username = value
	case FieldEmail:
		c.fields.Email = value
	case FieldPassword:
		c.fields.Password = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Validate checks the current mode's required fields without changing state
func (c *Controller) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validate(c.mode, c.fields)
}

func validate(mode client.Mode, fields Fields) error {
	for _, f := range RequiredFields(mode) {
		if fields.Get(f) == "" {
			return &ValidationError{Field: f, Reason: "is required"}
		}
	}
	if mode == client.ModeSignUp {
		// A bare address only; display-name forms like "Bob <bob@example.com>" are rejected
		addr, err := mail.ParseAddress(fields.Email)
		if err != nil || addr.Address != fields.Email || !strings.Contains(fields.Email, "@") {
			return &ValidationError{Field: FieldEmail, Reason: "must be a valid email address"}
		}
	}
	return nil
}

// Begin validates and moves Idle/Failed to Submitting, returning the payload
// for the current mode. While already submitting it returns ErrBusy. A
// validation failure moves the form to Failed and issues no request.
func (c *Controller) Begin() (client.Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detached {
		return nil, ErrDetached
	}
	if c.submission.Status == StatusSubmitting {
		return nil, ErrBusy
	}
	if err := validate(c.mode, c.fields); err != nil {
		c.submission = Submission{Status: StatusFailed, Message: err.Error()}
		return nil, err
	}

	c.submission = Submission{Status: StatusSubmitting}
	c.notice = ""
	return c.payloadLocked(), nil
}

func (c *Controller) payloadLocked() client.Payload {
	switch c.mode {
	case client.ModeSignUp:
		return client.SignUpPayload{
			Name:     c.fields.Name,
			Username: c.fields.Username,
			Email:    c.fields.Email,
			Password: c.fields.Password,
		}
	default:
		return client.LoginPayload{
			Username: c.fields.Username,
			Password: c.fields.Password,
		}
	}
}

// Complete applies the result of the request started by Begin
func (c *Controller) Complete(result client.AuthResult) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detached || c.submission.Status != StatusSubmitting {
		slog.Debug("Discarding auth result for inactive form", "detached", c.detached)
		return Outcome{Discarded: true}
	}

	if !result.Succeeded() {
		c.submission = Submission{Status: StatusFailed, Message: result.Message}
		return Outcome{}
	}

	if c.mode == client.ModeSignUp {
		c.mode = client.ModeLogin
		c.submission = Submission{Status: StatusIdle}
		c.notice = SignUpNotice
		return Outcome{}
	}

	if !result.HasSession() {
		c.submission = Submission{Status: StatusFailed, Message: "Network error: login response did not include a session"}
		return Outcome{}
	}
	if err := c.store.Set(result.Token, result.UserID); err != nil {
		slog.Error("Failed to persist session", "error", err)
		c.submission = Submission{Status: StatusFailed, Message: "Could not save session: " + err.Error()}
		return Outcome{}
	}

	c.submission = Submission{Status: StatusIdle}
	return Outcome{NavigateTo: DashboardPath}
}

// Submit runs a whole submission synchronously
func (c *Controller) Submit(ctx context.Context, auth Authenticator) (Outcome, error) {
	payload, err := c.Begin()
	if err != nil {
		return Outcome{}, err
	}
	return c.Complete(auth.Authenticate(ctx, payload)), nil
}

// Detach marks the owner as gone; later results are dropped without touching the session
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detached = true
}
