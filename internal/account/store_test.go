package account

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hh-automation/internal/browser"
)

type fakeLoginBrowser struct {
	visited []string
	cookies []browser.Cookie
}

func (f *fakeLoginBrowser) Navigate(url string) error {
	f.visited = append(f.visited, url)
	return nil
}

func (f *fakeLoginBrowser) Cookies() ([]browser.Cookie, error) {
	return f.cookies, nil
}

type scriptedPrompter struct {
	name       string
	urls       []string
	letter     string
	words      []string
	index      int
	loginWaits int
}

func (p *scriptedPrompter) AccountName() string { return p.name }

func (p *scriptedPrompter) SearchURLs() []string { return p.urls }

func (p *scriptedPrompter) CoverLetter() string { return p.letter }

func (p *scriptedPrompter) ExcludedWords() []string { return p.words }

func (p *scriptedPrompter) WaitForLogin() { p.loginWaits++ }

func (p *scriptedPrompter) ChooseIndex(max int) int { return p.index }

func TestList_OrdersByTrailingTimestamp(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha_1700000000", "gamma", "beta_1600000000"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}

	s := NewStore(dir)
	//no parsable timestamp sorts first, then ascending by timestamp
	assert.Equal(t, []string{"gamma", "beta_1600000000", "alpha_1700000000"}, s.List())
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "work", BaseName("work_1700000000"))
	assert.Equal(t, "plain", BaseName("plain"))
	assert.Equal(t, "with_underscore", BaseName("with_underscore"))
	assert.Equal(t, "with_underscore", BaseName("with_underscore_1700000000"))
}

func TestGetSettings_NotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.GetSettings("missing_123")
	assert.True(t, errors.Is(err, ErrSettingsNotFound))
}

func TestSettings_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, os.MkdirAll(s.AccountDir("work_1"), 0755))

	in := &Settings{
		URLs:          []string{"https://hh.ru/search/vacancy?text=golang&page=1"},
		VacancyText:   "Hello, I would like to apply.",
		ExcludedWords: []string{"intern", "senior"},
	}
	require.NoError(t, s.SaveSettings("work_1", in))

	out, err := s.GetSettings("work_1")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one_100", "two_200"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}
	s := NewStore(dir)

	name, err := s.Select(2, nil)
	require.NoError(t, err)
	assert.Equal(t, "two_200", name)

	_, err = s.Select(3, nil)
	assert.True(t, errors.Is(err, ErrInvalidSelection))

	_, err = s.Select(-1, nil)
	assert.True(t, errors.Is(err, ErrInvalidSelection))

	//interactive path delegates to the prompter
	name, err = s.Select(0, &scriptedPrompter{index: 1})
	require.NoError(t, err)
	assert.Equal(t, "one_100", name)
}

func TestSelect_NoAccounts(t *testing.T) {
	s := NewStore(t.TempDir())
	name, err := s.Select(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestRegisterOrUpdate_NewAccount(t *testing.T) {
	s := NewStore(t.TempDir())
	ctrl := &fakeLoginBrowser{cookies: []browser.Cookie{{Name: "hhtoken", Value: "v", Domain: ".hh.ru", Path: "/"}}}
	p := &scriptedPrompter{
		name:   "work",
		urls:   []string{"https://hh.ru/search/vacancy?text=go"},
		letter: "cover letter",
		words:  []string{"intern"},
	}

	name, cookiePath, err := s.RegisterOrUpdate(ctrl, p, "https://hh.ru")
	require.NoError(t, err)
	assert.Equal(t, "work", BaseName(name))
	assert.Equal(t, 1, p.loginWaits)
	assert.FileExists(t, cookiePath)

	settings, err := s.GetSettings(name)
	require.NoError(t, err)
	assert.Equal(t, p.urls, settings.URLs)
	assert.Equal(t, "cover letter", settings.VacancyText)
	assert.Equal(t, []string{"intern"}, settings.ExcludedWords)

	//cookies survive the round trip
	cookies, err := browser.LoadCookies(cookiePath)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "hhtoken", cookies[0].Name)
}

func TestRegisterOrUpdate_BlankAnswersKeepSettings(t *testing.T) {
	s := NewStore(t.TempDir())
	ctrl := &fakeLoginBrowser{}

	first := &scriptedPrompter{
		name:   "work",
		urls:   []string{"https://hh.ru/search/vacancy?text=go"},
		letter: "original letter",
		words:  []string{"intern"},
	}
	name, _, err := s.RegisterOrUpdate(ctrl, first, "https://hh.ru")
	require.NoError(t, err)

	//re-register the same base name with blank answers
	second := &scriptedPrompter{name: "work"}
	updated, _, err := s.RegisterOrUpdate(ctrl, second, "https://hh.ru")
	require.NoError(t, err)
	assert.Equal(t, name, updated, "same base name resolves to the existing account")

	settings, err := s.GetSettings(name)
	require.NoError(t, err)
	assert.Equal(t, first.urls, settings.URLs)
	assert.Equal(t, "original letter", settings.VacancyText)
	assert.Equal(t, []string{"intern"}, settings.ExcludedWords)
}
