package session

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go-hh-automation/internal/account"
	"go-hh-automation/internal/browser"
	"go-hh-automation/internal/config"
	"go-hh-automation/internal/prompt"
	"go-hh-automation/utils"
)

// Manager produces an authenticated browser controller for a chosen account:
// replay persisted cookies, verify the session is live, and fall back to an
// interactive manual login when it is not.
type Manager struct {
	ctrl    browser.Controller
	store   *account.Store
	prompt  prompt.Prompter
	baseURL string
	delays  config.Delays
}

func NewManager(ctrl browser.Controller, store *account.Store, p prompt.Prompter, cfg *config.Config) *Manager {
	return &Manager{
		ctrl:    ctrl,
		store:   store,
		prompt:  p,
		baseURL: cfg.BaseURL,
		delays:  cfg.Delays,
	}
}

// IsLoggedIn is a heuristic liveness check: navigate to the site root, let it
// settle, and look for a logout affordance in the page content.
func (m *Manager) IsLoggedIn() bool {
	if err := m.ctrl.Navigate(m.baseURL); err != nil {
		return false
	}
	utils.FixedDelay(m.delays.LoginSettleMs)
	content, err := m.ctrl.Content()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(content), "logout")
}

// EnsureLoggedIn authenticates the controller for the given account. When no
// cookie file exists yet (or no account was chosen), it runs the registration
// flow instead. Returns the resolved account identifier.
func (m *Manager) EnsureLoggedIn(name string) (string, error) {
	if err := m.ctrl.Navigate(m.baseURL); err != nil {
		return name, fmt.Errorf("failed to open %s: %w", m.baseURL, err)
	}

	cookiePath := ""
	if name != "" {
		cookiePath = m.store.CookiePath(name)
	}
	if cookiePath == "" || !fileExists(cookiePath) {
		log.Println("⚠️ Cookies not found. Log in manually.")
		newName, _, err := m.store.RegisterOrUpdate(m.ctrl, m.prompt, m.baseURL)
		if err != nil {
			return name, err
		}
		log.Printf("👤 Using account: %s", account.BaseName(newName))
		return newName, nil
	}

	cookies, err := browser.LoadCookies(cookiePath)
	if err != nil {
		return name, err
	}
	if err := m.ctrl.SetCookies(cookies); err != nil {
		return name, err
	}

	if !m.IsLoggedIn() {
		log.Println("⚠️ Cookies are stale. Log in manually.")
		m.prompt.WaitForLogin()
		refreshed, err := m.ctrl.Cookies()
		if err != nil {
			return name, err
		}
		if err := browser.SaveCookies(cookiePath, refreshed); err != nil {
			return name, err
		}
		log.Printf("💾 Cookies refreshed in %s", cookiePath)
	}

	log.Printf("👤 Using account: %s", account.BaseName(name))
	return name, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
