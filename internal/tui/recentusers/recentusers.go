// ABOUTME: Manages the list of recently used login names
// ABOUTME: Stores usernames in the config directory to pre-fill login prompts

package recentusers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// MaxRecentUsers is the maximum number of usernames to keep
const MaxRecentUsers = 5

// FileName is the JSON file inside the config directory
const FileName = "recent_users.json"

// RecentUsers manages the list of recently used usernames.
// A nil *RecentUsers is valid and remembers nothing.
type RecentUsers struct {
	configDir string
	users     []string
}

type recentData struct {
	Users []string `json:"users"`
}

// New creates a new RecentUsers manager with the given config directory
func New(configDir string) *RecentUsers {
	return &RecentUsers{
		configDir: configDir,
		users:     nil,
	}
}

// configFile returns the path to the recent users JSON
func (ru *RecentUsers) configFile() string {
	return filepath.Join(ru.configDir, FileName)
}

// Load reads the recent users list from disk
func (ru *RecentUsers) Load() ([]string, error) {
	if ru == nil {
		return nil, nil
	}

	data, err := os.ReadFile(ru.configFile())
	if os.IsNotExist(err) {
		ru.users = []string{}
		return ru.users, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		// Invalid JSON, start fresh
		ru.users = []string{}
		return ru.users, nil
	}

	ru.users = make([]string, 0, len(recent.Users))
	for _, u := range recent.Users {
		if strings.TrimSpace(u) != "" {
			ru.users = append(ru.users, u)
		}
	}

	return ru.users, nil
}

// Save writes the recent users list to disk
func (ru *RecentUsers) Save(users []string) error {
	if ru == nil {
		return nil
	}

	if err := os.MkdirAll(ru.configDir, 0700); err != nil {
		return err
	}

	// Trim to max
	if len(users) > MaxRecentUsers {
		users = users[:MaxRecentUsers]
	}

	ru.users = users

	data, err := json.MarshalIndent(recentData{Users: users}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ru.configFile(), data, 0600)
}

// Add records a username (moves to front if exists)
func (ru *RecentUsers) Add(username string) error {
	if ru == nil || strings.TrimSpace(username) == "" {
		return nil
	}

	if ru.users == nil {
		if _, err := ru.Load(); err != nil {
			ru.users = []string{}
		}
	}

	newUsers := make([]string, 0, len(ru.users)+1)
	newUsers = append(newUsers, username)
	for _, u := range ru.users {
		if u != username {
			newUsers = append(newUsers, u)
		}
	}

	return ru.Save(newUsers)
}

// List returns the current list of recent usernames
func (ru *RecentUsers) List() []string {
	if ru == nil {
		return nil
	}
	if ru.users == nil {
		ru.Load()
	}
	return ru.users
}

// Last returns the most recent username, or "" when none is known
func (ru *RecentUsers) Last() string {
	users := ru.List()
	if len(users) == 0 {
		return ""
	}
	return users[0]
}
