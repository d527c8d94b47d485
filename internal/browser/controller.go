package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Controller is the single capability the crawl/respond pipeline needs from
// the underlying browser automation. The session manager owns it first, then
// hands it to the crawler and finally to the responder; it is never shared
// concurrently. Tests substitute scripted fakes.
type Controller interface {
	//Navigate to a URL and wait for the DOM
	Navigate(url string) error
	//CurrentURL of the page
	CurrentURL() string
	//Content returns the full page HTML
	Content() (string, error)
	//Cookies reads the session cookies from the browser context
	Cookies() ([]Cookie, error)
	//SetCookies loads a cookie set into the browser context
	SetCookies(cookies []Cookie) error
	//WaitVisible blocks until the first element matching selector is visible
	WaitVisible(selector string, timeout time.Duration) error
	//WaitHidden blocks until no element matching selector is visible
	WaitHidden(selector string, timeout time.Duration) error
	//IsVisible probes visibility without waiting
	IsVisible(selector string) bool
	//Click scrolls the element into view and clicks it
	Click(selector string, timeout time.Duration) error
	//ScriptClick clicks via script invocation, bypassing overlay hit-testing
	ScriptClick(selector string, timeout time.Duration) error
	//Fill types text into the first element matching selector
	Fill(selector, text string, timeout time.Duration) error
	//Elements enumerates all elements matching selector
	Elements(selector string) ([]Element, error)
	//Screenshot captures a full-page PNG to path
	Screenshot(path string) error
	//Close terminates the browser session
	Close() error
}

// Element is a scoped handle for sub-queries inside a listing card.
type Element interface {
	//Text of the first descendant matching selector
	Text(selector string) (string, error)
	//Attribute of the first descendant matching selector
	Attribute(selector, name string) (string, error)
	//Has reports whether any descendant matches selector
	Has(selector string) bool
}

// PageController adapts a playwright page to the Controller contract.
type PageController struct {
	page playwright.Page
}

func NewPageController(page playwright.Page) *PageController {
	return &PageController{page: page}
}

func (pc *PageController) Navigate(url string) error {
	_, err := pc.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

func (pc *PageController) CurrentURL() string {
	return pc.page.URL()
}

func (pc *PageController) Content() (string, error) {
	return pc.page.Content()
}

func (pc *PageController) Cookies() ([]Cookie, error) {
	pwCookies, err := pc.page.Context().Cookies()
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	cookies := make([]Cookie, len(pwCookies))
	for i, c := range pwCookies {
		cookies[i] = fromPlaywright(c)
	}
	return cookies, nil
}

func (pc *PageController) SetCookies(cookies []Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		pwCookies[i] = c.ToPlaywright()
	}
	if err := pc.page.Context().AddCookies(pwCookies); err != nil {
		return fmt.Errorf("failed to add cookies: %w", err)
	}
	return nil
}

func (pc *PageController) WaitVisible(selector string, timeout time.Duration) error {
	return pc.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (pc *PageController) WaitHidden(selector string, timeout time.Duration) error {
	return pc.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (pc *PageController) IsVisible(selector string) bool {
	visible, err := pc.page.Locator(selector).First().IsVisible()
	if err != nil {
		return false
	}
	return visible
}

func (pc *PageController) Click(selector string, timeout time.Duration) error {
	loc := pc.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return err
	}
	if err := loc.ScrollIntoViewIfNeeded(); err != nil {
		return err
	}
	return loc.Click()
}

func (pc *PageController) ScriptClick(selector string, timeout time.Duration) error {
	loc := pc.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return err
	}
	if err := loc.ScrollIntoViewIfNeeded(); err != nil {
		return err
	}
	//click from script so overlays cannot intercept the pointer event
	_, err := loc.Evaluate("el => el.click()", nil)
	return err
}

func (pc *PageController) Fill(selector, text string, timeout time.Duration) error {
	loc := pc.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return err
	}
	return loc.Fill(text)
}

func (pc *PageController) Elements(selector string) ([]Element, error) {
	locs, err := pc.page.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	elements := make([]Element, len(locs))
	for i, loc := range locs {
		elements[i] = &pageElement{loc: loc}
	}
	return elements, nil
}

func (pc *PageController) Screenshot(path string) error {
	_, err := pc.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (pc *PageController) Close() error {
	return pc.page.Context().Close()
}

type pageElement struct {
	loc playwright.Locator
}

func (e *pageElement) Text(selector string) (string, error) {
	return e.loc.Locator(selector).First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(1000),
	})
}

func (e *pageElement) Attribute(selector, name string) (string, error) {
	return e.loc.Locator(selector).First().GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(1000),
	})
}

func (e *pageElement) Has(selector string) bool {
	count, err := e.loc.Locator(selector).Count()
	if err != nil {
		return false
	}
	return count > 0
}
