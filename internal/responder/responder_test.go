package responder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hh-automation/internal/browser"
	"go-hh-automation/internal/config"
	"go-hh-automation/internal/vacancy"
)

// applyPage scripts how one vacancy page behaves during the flow.
type applyPage struct {
	clickErr    error
	redirectTo  string
	rateLimited bool
	hasAlert    bool
	hasTextarea bool
}

type fakeController struct {
	pages      map[string]*applyPage
	navigated  []string
	currentURL string
	current    *applyPage
	filled     string
	confirmed  bool
	submitted  bool
	closed     bool
}

func (f *fakeController) Navigate(url string) error {
	f.navigated = append(f.navigated, url)
	f.currentURL = url
	f.current = f.pages[url]
	return nil
}

func (f *fakeController) CurrentURL() string { return f.currentURL }

func (f *fakeController) Content() (string, error) { return "", nil }

func (f *fakeController) Cookies() ([]browser.Cookie, error) { return nil, nil }

func (f *fakeController) SetCookies([]browser.Cookie) error { return nil }

func (f *fakeController) WaitVisible(selector string, timeout time.Duration) error {
	if f.current == nil {
		return errors.New("no page")
	}
	switch selector {
	case alertSelector:
		if f.current.hasAlert {
			return nil
		}
	case textareaSelector:
		if f.current.hasTextarea {
			return nil
		}
	}
	return errors.New("timeout: " + selector)
}

func (f *fakeController) WaitHidden(string, time.Duration) error { return nil }

func (f *fakeController) IsVisible(selector string) bool {
	return f.current != nil && selector == errorSelector && f.current.rateLimited
}

func (f *fakeController) Click(selector string, timeout time.Duration) error {
	if selector == confirmSelector {
		f.confirmed = true
	}
	return nil
}

func (f *fakeController) ScriptClick(selector string, timeout time.Duration) error {
	if f.current == nil {
		return errors.New("no page")
	}
	if strings.Contains(selector, "vacancy-response-link-top") {
		if f.current.clickErr != nil {
			return f.current.clickErr
		}
		if f.current.redirectTo != "" {
			f.currentURL = f.current.redirectTo
		}
		return nil
	}
	f.submitted = true
	return nil
}

func (f *fakeController) Fill(selector, text string, timeout time.Duration) error {
	f.filled = text
	return nil
}

func (f *fakeController) Elements(string) ([]browser.Element, error) { return nil, nil }

func (f *fakeController) Screenshot(string) error { return nil }

func (f *fakeController) Close() error {
	f.closed = true
	return nil
}

func vacancies(links ...string) []vacancy.Vacancy {
	out := make([]vacancy.Vacancy, len(links))
	for i, link := range links {
		out[i] = vacancy.Vacancy{Title: "Go Developer", Employer: "Acme", Link: link}
	}
	return out
}

func TestRespondAll_RateLimitAbortsRun(t *testing.T) {
	ctrl := &fakeController{pages: map[string]*applyPage{
		"https://hh.ru/vacancy/1": {},
		"https://hh.ru/vacancy/2": {rateLimited: true},
		"https://hh.ru/vacancy/3": {},
	}}

	r := New(ctrl, "", config.Delays{}, nil)
	results := r.RespondAll(vacancies("https://hh.ru/vacancy/1", "https://hh.ru/vacancy/2", "https://hh.ru/vacancy/3"))

	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSubmitted, results[0].Outcome)
	assert.Equal(t, OutcomeRateLimited, results[1].Outcome)
	assert.NotContains(t, ctrl.navigated, "https://hh.ru/vacancy/3", "postings after the rate limit are never attempted")
	assert.True(t, ctrl.closed, "rate limit terminates the browser session")
}

func TestRespondAll_RedirectClassifiedAndReported(t *testing.T) {
	ctrl := &fakeController{pages: map[string]*applyPage{
		"https://hh.ru/vacancy/1": {redirectTo: "https://external.com/apply"},
	}}

	r := New(ctrl, "", config.Delays{}, nil)
	results := r.RespondAll(vacancies("https://hh.ru/vacancy/1"))

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSkippedRedirect, results[0].Outcome)
	require.Len(t, r.Redirected(), 1)
	assert.Equal(t, "https://hh.ru/vacancy/1", r.Redirected()[0].Link)
}

func TestRespondAll_CoverLetterFlow(t *testing.T) {
	ctrl := &fakeController{pages: map[string]*applyPage{
		"https://hh.ru/vacancy/1": {hasTextarea: true},
	}}

	r := New(ctrl, "Hello, I am interested.", config.Delays{}, nil)
	results := r.RespondAll(vacancies("https://hh.ru/vacancy/1"))

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSubmittedWithLetter, results[0].Outcome)
	assert.Equal(t, "Hello, I am interested.", ctrl.filled)
	assert.True(t, ctrl.submitted)
}

func TestRespondAll_CountryAlertConfirmed(t *testing.T) {
	ctrl := &fakeController{pages: map[string]*applyPage{
		"https://hh.ru/vacancy/1": {hasAlert: true, hasTextarea: true},
	}}

	r := New(ctrl, "letter", config.Delays{}, nil)
	results := r.RespondAll(vacancies("https://hh.ru/vacancy/1"))

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSubmittedWithLetter, results[0].Outcome)
	assert.True(t, ctrl.confirmed)
}

func TestRespondAll_ClickFailureIsolatedPerVacancy(t *testing.T) {
	ctrl := &fakeController{pages: map[string]*applyPage{
		"https://hh.ru/vacancy/1": {clickErr: errors.New("not clickable")},
		"https://hh.ru/vacancy/2": {},
	}}

	r := New(ctrl, "", config.Delays{}, nil)
	results := r.RespondAll(vacancies("https://hh.ru/vacancy/1", "https://hh.ru/vacancy/2"))

	require.Len(t, results, 2)
	assert.Equal(t, OutcomeError, results[0].Outcome)
	assert.Equal(t, OutcomeSubmitted, results[1].Outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "submitted", OutcomeSubmitted.String())
	assert.Equal(t, "submitted-with-letter", OutcomeSubmittedWithLetter.String())
	assert.Equal(t, "skipped-redirect", OutcomeSkippedRedirect.String())
	assert.Equal(t, "rate-limited", OutcomeRateLimited.String())
	assert.Equal(t, "error", OutcomeError.String())
}
