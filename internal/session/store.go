// ABOUTME: Session store holding the current auth token and user id
// ABOUTME: Reads and writes the fixed "token" and "user_id" keys of durable storage

package session

import (
	"fmt"
	"log/slog"
)

// Storage keys shared with anything else reading the session
const (
	TokenKey  = "token"
	UserIDKey = "user_id"
)

// Session is the client's record of being authenticated.
// Token and UserID are either both set or both empty.
type Session struct {
	Token  string `json:"token,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

// Present reports whether the session represents a logged-in user
func (s Session) Present() bool {
	return s.Token != "" && s.UserID != ""
}

// Store is the single source of truth for who is logged in
type Store interface {
	Get() Session
	Set(token, userID string) error
	Clear() error
}

// KVStore implements Store on top of a Storage
type KVStore struct {
	storage Storage
}

// NewStore creates a session store over the given storage
func NewStore(storage Storage) *KVStore {
	return &KVStore{storage: storage}
}

// Get returns the current session, or an absent one if either key is missing
func (s *KVStore) Get() Session {
	token, ok := s.storage.GetItem(TokenKey)
	if !ok || token == "" {
		return Session{}
	}
	userID, ok := s.storage.GetItem(UserIDKey)
	if !ok || userID == "" {
		return Session{}
	}
	return Session{Token: token, UserID: userID}
}

// Set stores both values, replacing any prior session. The token is opaque.
func (s *KVStore) Set(token, userID string) error {
	if err := s.storage.SetItem(TokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.storage.SetItem(UserIDKey, userID); err != nil {
		// Don't leave a token without its user id behind
		_ = s.storage.RemoveItem(TokenKey)
		return fmt.Errorf("failed to store user id: %w", err)
	}
	slog.Info("Session established", "user_id", userID)
	return nil
}

// Clear removes both keys
func (s *KVStore) Clear() error {
	if err := s.storage.RemoveItem(TokenKey, UserIDKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	slog.Info("Session cleared")
	return nil
}
