package crawler

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"go-hh-automation/internal/browser"
	"go-hh-automation/internal/config"
	"go-hh-automation/internal/filter"
	"go-hh-automation/internal/vacancy"
	"go-hh-automation/utils"
)

// hh.ru search-results markup
const (
	titleSelector    = "span[data-qa='serp-item__title-text']"
	cardSelector     = "div[data-qa='vacancy-serp__vacancy']"
	linkSelector     = "a[data-qa='serp-item__title']"
	employerSelector = "span[data-qa='vacancy-serp__vacancy-employer-text']"
	//status badge rendered on cards the account has already opened
	viewedSelector = ".workflow-status-container--cGFP1E5X940FGAbg"
)

// Browser is the slice of the controller the crawler drives.
type Browser interface {
	Navigate(url string) error
	WaitVisible(selector string, timeout time.Duration) error
	Elements(selector string) ([]browser.Element, error)
}

// Session carries the state of one crawl run: the collected vacancies and the
// identity triples already seen. It is explicit call state, not ambient, and
// is never persisted.
type Session struct {
	seen      mapset.Set[vacancy.Key]
	Vacancies []vacancy.Vacancy
}

func NewSession() *Session {
	return &Session{seen: mapset.NewSet[vacancy.Key]()}
}

// add appends v unless its identity triple was already collected.
func (s *Session) add(v vacancy.Vacancy) bool {
	if !s.seen.Add(v.Key()) {
		return false
	}
	s.Vacancies = append(s.Vacancies, v)
	return true
}

// Crawler paginates through configured search URLs and extracts candidate
// vacancies, strictly sequentially over one browser session.
type Crawler struct {
	browser  Browser
	matcher  *filter.Matcher
	maxPages int
	delays   config.Delays
}

func New(b Browser, excludedWords []string, maxPages int, delays config.Delays) *Crawler {
	return &Crawler{
		browser:  b,
		matcher:  filter.NewMatcher(excludedWords),
		maxPages: maxPages,
		delays:   delays,
	}
}

// CrawlAll walks every search URL and returns the crawl session with the
// deduplicated, filtered vacancy list.
func (c *Crawler) CrawlAll(urls []string) *Session {
	sess := NewSession()
	for _, u := range urls {
		c.crawlURL(sess, u)
		utils.RandomDelay(c.delays.URLMinMs, c.delays.URLMaxMs)
	}
	return sess
}

func (c *Crawler) crawlURL(sess *Session, baseURL string) {
	log.Printf("🌐 Crawling URL: %s", baseURL)

	for page := 1; page <= c.maxPages; page++ {
		pageURL, err := WithPage(baseURL, page)
		if err != nil {
			log.Printf("⚠️ Bad search URL %s: %v", baseURL, err)
			return
		}

		if err := c.browser.Navigate(pageURL); err != nil {
			log.Printf("⚠️ Failed to open page %d: %v", page, err)
			return
		}
		log.Printf("🔄 Page %d: %s", page, pageURL)

		if err := c.browser.WaitVisible(titleSelector, c.waitTimeout()); err != nil {
			log.Printf("⚠️ No listings appeared on page %d: %v", page, err)
			return
		}
		utils.RandomDelay(c.delays.CardMinMs, c.delays.CardMaxMs)

		cards, err := c.browser.Elements(cardSelector)
		if err != nil {
			log.Printf("⚠️ Failed to enumerate vacancy cards: %v", err)
			return
		}
		if len(cards) == 0 {
			log.Println("📭 No vacancies on this page. Skipping the rest of this URL.")
			return
		}

		for _, card := range cards {
			c.processCard(sess, card)
		}

		log.Printf("📄 Page %d processed. %d vacancies collected so far.", page, len(sess.Vacancies))
		utils.RandomDelay(c.delays.PageMinMs, c.delays.PageMaxMs)
	}
}

func (c *Crawler) processCard(sess *Session, card browser.Element) {
	if card.Has(viewedSelector) {
		log.Println("⏩ Skipped vacancy — already viewed.")
		return
	}

	title, err := card.Text(titleSelector)
	if err != nil {
		log.Printf("⚠️ Failed to read card title: %v", err)
		return
	}
	link, err := card.Attribute(linkSelector, "href")
	if err != nil {
		log.Printf("⚠️ Failed to read card link: %v", err)
		return
	}
	employer, err := card.Text(employerSelector)
	if err != nil {
		log.Printf("⚠️ Failed to read card employer: %v", err)
		return
	}

	v := vacancy.Vacancy{
		Title:    strings.TrimSpace(title),
		Employer: strings.TrimSpace(employer),
		Link:     link,
	}

	if word, excluded := c.matcher.Excluded(v.Title, v.Employer); excluded {
		log.Printf("❌ Excluded (%s): %s | %s", word, v.Title, v.Employer)
		return
	}

	if sess.add(v) {
		log.Printf("✅ Found vacancy: %s | %s", v.Title, v.Employer)
	}
}

func (c *Crawler) waitTimeout() time.Duration {
	return time.Duration(c.delays.WaitTimeoutMs) * time.Millisecond
}

// WithPage rewrites the page query parameter of a search URL, preserving all
// other parameters.
func WithPage(rawURL string, page int) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
