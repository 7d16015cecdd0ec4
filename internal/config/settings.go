package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// DefaultAPIURL is the hosted task service.
	DefaultAPIURL = "https://mileapp-test-mock-api-production.up.railway.app/"

	// DefaultPageLimit is the number of tasks per page.
	DefaultPageLimit = 5

	// EnvAPIURL overrides api_url.
	EnvAPIURL = "TASKBOARD_API_URL"
)

// Keymap holds the key strings (tea.KeyMsg.String form) of the task view.
type Keymap struct {
	Quit        string   `toml:"quit"`
	Up          string   `toml:"up"`
	Down        string   `toml:"down"`
	Add         string   `toml:"add"`
	Edit        string   `toml:"edit"`
	Delete      string   `toml:"delete"`
	Filter      string   `toml:"filter"`
	SortTitle   string   `toml:"sort_title"`
	SortStatus  string   `toml:"sort_status"`
	SortCreated string   `toml:"sort_created"`
	NextPage    string   `toml:"next_page"`
	PrevPage    string   `toml:"prev_page"`
	Refresh     string   `toml:"refresh"`
	Logout      string   `toml:"logout"`
	Confirm     string   `toml:"confirm"`
	Cancel      string   `toml:"cancel"`
	Save        []string `toml:"save"`
	Submit      string   `toml:"submit"`
	NextField   string   `toml:"next_field"`
	PrevField   string   `toml:"prev_field"`
}

// Settings is the content of the settings file.
type Settings struct {
	APIURL         string `toml:"api_url"`
	PageLimit      int    `toml:"page_limit"`
	RequestTimeout int    `toml:"request_timeout" comment:"seconds, 0 means no timeout"`
	Keys           Keymap `toml:"keys"`
}

// Timeout returns the request timeout as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		APIURL:    DefaultAPIURL,
		PageLimit: DefaultPageLimit,
		Keys: Keymap{
			Quit:        "q",
			Up:          "k",
			Down:        "j",
			Add:         "a",
			Edit:        "e",
			Delete:      "d",
			Filter:      "f",
			SortTitle:   "1",
			SortStatus:  "2",
			SortCreated: "3",
			NextPage:    "n",
			PrevPage:    "p",
			Refresh:     "r",
			Logout:      "L",
			Confirm:     "y",
			Cancel:      "esc",
			Save:        []string{"ctrl+s", "alt+s"},
			Submit:      "enter",
			NextField:   "tab",
			PrevField:   "shift+tab",
		},
	}
}

// LoadOrCreate reads the settings at path, writing the defaults first if the
// file does not exist. Unset fields keep their defaults and EnvAPIURL wins
// over the file.
func LoadOrCreate(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, s); err != nil {
			return s, fmt.Errorf("write %s: %w", path, err)
		}
		return applyEnv(s), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.APIURL == "" {
		s.APIURL = DefaultAPIURL
	}
	if s.PageLimit <= 0 {
		s.PageLimit = DefaultPageLimit
	}
	if s.RequestTimeout < 0 {
		s.RequestTimeout = 0
	}
	return applyEnv(s), nil
}

func applyEnv(s Settings) Settings {
	if u := os.Getenv(EnvAPIURL); u != "" {
		s.APIURL = u
	}
	return s
}

func write(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
