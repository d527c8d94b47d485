package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-hh-automation/internal/browser"
	"go-hh-automation/internal/prompt"
)

var (
	ErrSettingsNotFound = errors.New("settings file not found")
	ErrInvalidSelection = errors.New("invalid account selection")
)

// LoginBrowser is the slice of the browser controller the registration flow
// needs: open the login page and read back the captured session cookies.
type LoginBrowser interface {
	Navigate(url string) error
	Cookies() ([]browser.Cookie, error)
}

// Settings is the per-account configuration persisted as settings.json.
type Settings struct {
	URLs          []string `json:"urls"`
	VacancyText   string   `json:"vacancy_text"`
	ExcludedWords []string `json:"excluded_words"`
}

// Store manages named account profiles: one directory per account holding
// cookies.json and settings.json. Account identifiers embed the creation
// Unix timestamp so re-registrations of the same base name stay apart.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create accounts directory: %v", err)
	}
	return &Store{dir: dir}
}

// List returns account identifiers sorted ascending by the trailing creation
// timestamp. Identifiers without a parsable timestamp sort as 0.
func (s *Store) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return extractTimestamp(names[i]) < extractTimestamp(names[j])
	})
	return names
}

func extractTimestamp(name string) int64 {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return 0
	}
	ts, err := strconv.ParseInt(name[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

// BaseName strips the trailing timestamp from an account identifier.
func BaseName(name string) string {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return name
	}
	if _, err := strconv.ParseInt(name[idx+1:], 10, 64); err != nil {
		return name
	}
	return name[:idx]
}

func (s *Store) AccountDir(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) CookiePath(name string) string {
	return filepath.Join(s.AccountDir(name), "cookies.json")
}

func (s *Store) SettingsPath(name string) string {
	return filepath.Join(s.AccountDir(name), "settings.json")
}

func (s *Store) GetSettings(name string) (*Settings, error) {
	path := s.SettingsPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
		}
		return nil, err
	}
	settings := &Settings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return settings, nil
}

func (s *Store) SaveSettings(name string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(s.SettingsPath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// RegisterOrUpdate runs the interactive registration flow: resolve or
// allocate the account identifier, capture cookies after a manual login, and
// merge the prompted settings (blank answers keep the current values).
// Returns the account identifier and its cookie-file path.
func (s *Store) RegisterOrUpdate(ctrl LoginBrowser, p prompt.Prompter, baseURL string) (string, string, error) {
	base := p.AccountName()
	if base == "" {
		return "", "", fmt.Errorf("%w: empty account name", ErrInvalidSelection)
	}

	name := ""
	for _, existing := range s.List() {
		if BaseName(existing) == base {
			//list is sorted ascending, so the last match wins
			name = existing
		}
	}
	if name != "" {
		log.Printf("⚠️ Account '%s' already exists. Updating: %s", base, name)
	} else {
		name = fmt.Sprintf("%s_%d", base, time.Now().Unix())
	}

	if err := os.MkdirAll(s.AccountDir(name), 0755); err != nil {
		return "", "", fmt.Errorf("failed to create account directory: %w", err)
	}

	log.Printf("🔐 Opening site for account '%s'.", name)
	if err := ctrl.Navigate(baseURL); err != nil {
		return "", "", fmt.Errorf("failed to open %s: %w", baseURL, err)
	}
	p.WaitForLogin()

	//reload so the session cookies are final
	if err := ctrl.Navigate(baseURL); err != nil {
		return "", "", fmt.Errorf("failed to reload %s: %w", baseURL, err)
	}
	cookies, err := ctrl.Cookies()
	if err != nil {
		return "", "", err
	}
	cookiePath := s.CookiePath(name)
	if err := browser.SaveCookies(cookiePath, cookies); err != nil {
		return "", "", err
	}

	settings, err := s.GetSettings(name)
	if err != nil {
		settings = &Settings{}
	}

	if urls := p.SearchURLs(); len(urls) > 0 {
		settings.URLs = urls
	}
	if text := p.CoverLetter(); strings.TrimSpace(text) != "" {
		settings.VacancyText = text
	}
	if words := p.ExcludedWords(); len(words) > 0 {
		settings.ExcludedWords = words
	}

	if err := s.SaveSettings(name, settings); err != nil {
		return "", "", err
	}
	log.Printf("💾 Cookies saved to %s", cookiePath)
	log.Printf("⚙️ Settings saved to %s", s.SettingsPath(name))
	return name, cookiePath, nil
}

// Select resolves an account identifier. index > 0 selects non-interactively
// (1-based, validated against the list); index 0 prompts until a valid choice
// is entered. Returns "" without error when no accounts exist yet.
func (s *Store) Select(index int, p prompt.Prompter) (string, error) {
	names := s.List()
	if len(names) == 0 {
		return "", nil
	}

	if index != 0 {
		if index < 1 || index > len(names) {
			return "", fmt.Errorf("%w: %d", ErrInvalidSelection, index)
		}
		return names[index-1], nil
	}

	fmt.Println("🔐 Choose an account:")
	printList(names)
	return names[p.ChooseIndex(len(names))-1], nil
}

// Show prints the account list, one base name per line.
func (s *Store) Show() {
	names := s.List()
	if len(names) == 0 {
		fmt.Println("📭 No accounts registered yet.")
		return
	}
	fmt.Println("🔐 Available accounts:")
	printList(names)
}

func printList(names []string) {
	for i, name := range names {
		fmt.Printf("%d. %s\n", i+1, BaseName(name))
	}
}
