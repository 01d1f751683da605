// ABOUTME: Login and registration calls against the SkillGenome auth API
// ABOUTME: Normalizes every outcome into an AuthResult instead of returning errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Mode is whether the credential form acts as a login or a registration form
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignUp
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeSignUp:
		return "signup"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeSignUp {
		return ModeLogin
	}
	return ModeSignUp
}

// Payload is a request body for one of the auth endpoints.
// Only LoginPayload and SignUpPayload implement it.
type Payload interface {
	Mode() Mode
	endpoint() string
}

// LoginPayload is the body of POST /auth/login
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Mode implements Payload
func (LoginPayload) Mode() Mode       { return ModeLogin }
func (LoginPayload) endpoint() string { return "/auth/login" }

// SignUpPayload is the body of POST /auth/register
type SignUpPayload struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Mode implements Payload
func (SignUpPayload) Mode() Mode       { return ModeSignUp }
func (SignUpPayload) endpoint() string { return "/auth/register" }

// Error categories carried by a failed AuthResult
var (
	ErrAuthentication = errors.New("authentication rejected")
	ErrTransport      = errors.New("transport failure")
)

// FallbackMessage is shown when the server rejects a request without saying why
const FallbackMessage = "Something went wrong"

// ResultKind discriminates AuthResult
type ResultKind int

const (
	KindFailure ResultKind = iota
	KindSuccess
)

// AuthResult is the outcome of Authenticate.
// On success Token and UserID are set for logins and empty for registrations.
// On failure Message is user-facing and Err is ErrAuthentication or ErrTransport.
type AuthResult struct {
	Kind    ResultKind
	Token   string
	UserID  string
	Message string
	Err     error
}

// Succeeded reports whether the request was accepted
func (r AuthResult) Succeeded() bool {
	return r.Kind == KindSuccess
}

// HasSession reports whether the result carries a session to persist
func (r AuthResult) HasSession() bool {
	return r.Succeeded() && r.Token != "" && r.UserID != ""
}

// Success builds a successful result; pass empty strings for registrations
func Success(token, userID string) AuthResult {
	return AuthResult{Kind: KindSuccess, Token: token, UserID: userID}
}

// Failure builds a failed result
func Failure(category error, message string) AuthResult {
	return AuthResult{Kind: KindFailure, Message: message, Err: category}
}

// loginResponse is the 2xx body of /auth/login
type loginResponse struct {
	Token  string     `json:"token"`
	UserID flexibleID `json:"user_id"`
}

// flexibleID accepts both "42" and 42 on the wire
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// Authenticate posts the payload to its endpoint and never returns an error.
// Concurrent submissions of an identical payload share one request. The
// shared request is not canceled by any single caller; each caller stops
// waiting when its own ctx is done.
func (c *Client) Authenticate(ctx context.Context, p Payload) AuthResult {
	if p == nil {
		return Failure(ErrTransport, "Network error: no credentials to submit")
	}
	if err := ctx.Err(); err != nil {
		return Failure(ErrTransport, "Network error: "+c.handleRequestError(ctx, err).Error())
	}

	body, err := json.Marshal(p)
	if err != nil {
		return Failure(ErrTransport, fmt.Sprintf("Network error: failed to encode request: %v", err))
	}

	// The key covers every field so callers only share a result for the same request
	key := p.endpoint() + "\x00" + string(body)
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		return c.authenticate(shared, p, body), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.Debug("Joined in-flight auth request", "endpoint", p.endpoint())
		}
		return res.Val.(AuthResult)
	case <-ctx.Done():
		return Failure(ErrTransport, "Network error: "+c.handleRequestError(ctx, ctx.Err()).Error())
	}
}

func (c *Client) authenticate(ctx context.Context, p Payload, body []byte) AuthResult {
	url := c.baseURL + p.endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Failure(ErrTransport, fmt.Sprintf("Network error: failed to create request: %v", err))
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = c.handleRequestError(ctx, err)
		slog.Warn("Auth request failed", "endpoint", p.endpoint(), "request_id", requestID, "error", err)
		return Failure(ErrTransport, "Network error: "+err.Error())
	}
	defer resp.Body.Close()
	logRequest(http.MethodPost, url, requestID, resp.StatusCode, start)

	if !isSuccess(resp.StatusCode) {
		msg := errorMessage(resp.Body)
		slog.Info("Auth request rejected",
			"endpoint", p.endpoint(),
			"request_id", requestID,
			"status", resp.StatusCode,
			"message", msg)
		return Failure(ErrAuthentication, msg)
	}

	if p.Mode() == ModeSignUp {
		// Registration does not establish a session; the body is informational
		io.Copy(io.Discard, resp.Body)
		return Success("", "")
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return Failure(ErrTransport, fmt.Sprintf("Network error: invalid response from backend: %v", err))
	}
	if lr.Token == "" || lr.UserID == "" {
		return Failure(ErrTransport, "Network error: invalid response from backend: missing token or user_id")
	}
	return Success(lr.Token, string(lr.UserID))
}

// errorMessage extracts the server's "error" field or falls back to a generic message
func errorMessage(body io.Reader) string {
	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil || errResp.Error == "" {
		return FallbackMessage
	}
	return errResp.Error
}
