package responder

import (
	"log"
	"time"

	"go-hh-automation/internal/browser"
	"go-hh-automation/internal/config"
	"go-hh-automation/internal/vacancy"
	"go-hh-automation/utils"
)

// hh.ru vacancy-page markup
const (
	applySelector    = "a[data-qa='vacancy-response-link-top']"
	errorSelector    = "div[data-qa='vacancy-response-error-notification']"
	alertSelector    = "div[data-qa='magritte-alert']"
	confirmSelector  = "button[data-qa='relocation-warning-confirm']"
	textareaSelector = "div[data-qa='textarea-native-wrapper'] textarea"
	submitSelector   = "button[type='submit'][data-qa='vacancy-response-letter-submit'], button[type='submit'][data-qa='vacancy-response-submit-popup']"
)

// Outcome classifies one application attempt.
type Outcome int

const (
	OutcomeSubmitted Outcome = iota
	OutcomeSubmittedWithLetter
	OutcomeSkippedRedirect
	OutcomeRateLimited
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeSubmittedWithLetter:
		return "submitted-with-letter"
	case OutcomeSkippedRedirect:
		return "skipped-redirect"
	case OutcomeRateLimited:
		return "rate-limited"
	default:
		return "error"
	}
}

type Result struct {
	Vacancy vacancy.Vacancy
	Outcome Outcome
}

// Responder drives the multi-step application flow for each vacancy:
// click apply, detect redirect and rate-limit conditions, confirm the
// relocation dialog when shown, and fill the cover letter when a text field
// is present. Failures are isolated per vacancy; only a rate limit stops the
// whole run.
type Responder struct {
	ctrl       browser.Controller
	letterText string
	delays     config.Delays
	shots      *utils.ScreenShotDebugger
	redirected []vacancy.Vacancy
}

func New(ctrl browser.Controller, letterText string, delays config.Delays, shots *utils.ScreenShotDebugger) *Responder {
	return &Responder{
		ctrl:       ctrl,
		letterText: letterText,
		delays:     delays,
		shots:      shots,
	}
}

// RespondAll processes the vacancy list sequentially and returns one result
// per attempted vacancy. On a rate limit the browser session is terminated
// and the remaining vacancies are never attempted.
func (r *Responder) RespondAll(vacancies []vacancy.Vacancy) []Result {
	var results []Result
	for i, v := range vacancies {
		log.Printf("➡️ [%d] Opening vacancy: %s | %s", i+1, v.Title, v.Employer)
		outcome := r.respond(v)
		results = append(results, Result{Vacancy: v, Outcome: outcome})

		switch outcome {
		case OutcomeRateLimited:
			log.Println("🛑 Application limit reached (max 200 per 24h). Stopping the run.")
			if err := r.ctrl.Close(); err != nil {
				log.Printf("⚠️ Failed to close browser session: %v", err)
			}
			r.printRedirected()
			return results
		case OutcomeSkippedRedirect:
			log.Printf("🚫 [%d] Skipped — redirected to another page.", i+1)
			r.redirected = append(r.redirected, v)
		}

		utils.RandomDelay(r.delays.OpenMinMs, r.delays.OpenMaxMs)
	}
	r.printRedirected()
	return results
}

func (r *Responder) respond(v vacancy.Vacancy) Outcome {
	if err := r.ctrl.Navigate(v.Link); err != nil {
		log.Printf("⚠️ Failed to open vacancy: %v", err)
		r.captureFailure("vacancy-open-failed")
		return OutcomeError
	}
	utils.RandomDelay(r.delays.OpenMinMs, r.delays.OpenMaxMs)

	redirected, rateLimited, err := r.clickApply()
	if err != nil {
		log.Printf("⚠️ Failed to click the apply button: %v", err)
		r.captureFailure("apply-click-failed")
		return OutcomeError
	}

	if rateLimited {
		return OutcomeRateLimited
	}
	if redirected {
		return OutcomeSkippedRedirect
	}

	if r.hasCountryAlert() {
		log.Println("🌍 Country/relocation warning detected.")
		r.confirmRelocation()
	}

	if r.hasTextarea() {
		log.Println("📝 Cover-letter field detected.")
		r.fillLetter()
		r.submitLetter()
		return OutcomeSubmittedWithLetter
	}

	log.Println("📭 No text field found. Simple application sent.")
	return OutcomeSubmitted
}

// clickApply clicks the primary apply affordance via script invocation and
// reports whether the click navigated away or hit the rate-limit banner.
func (r *Responder) clickApply() (redirected, rateLimited bool, err error) {
	before := r.ctrl.CurrentURL()

	if err := r.ctrl.ScriptClick(applySelector, r.waitTimeout()); err != nil {
		return false, false, err
	}
	log.Println("✅ Apply button clicked.")
	utils.FixedDelay(r.delays.ClickSettleMs)

	after := r.ctrl.CurrentURL()
	return before != after, r.ctrl.IsVisible(errorSelector), nil
}

func (r *Responder) hasCountryAlert() bool {
	//short probe so unaffected vacancies are not stalled
	if err := r.ctrl.WaitVisible(alertSelector, time.Duration(r.delays.AlertProbeMs)*time.Millisecond); err != nil {
		return false
	}
	return true
}

func (r *Responder) confirmRelocation() {
	if err := r.ctrl.Click(confirmSelector, r.waitTimeout()); err != nil {
		log.Printf("⚠️ Relocation confirm button not found or not clickable: %v", err)
		return
	}
	log.Println("✅ Relocation warning confirmed.")
}

func (r *Responder) hasTextarea() bool {
	return r.ctrl.WaitVisible(textareaSelector, r.waitTimeout()) == nil
}

func (r *Responder) fillLetter() {
	if err := r.ctrl.Fill(textareaSelector, r.letterText, r.waitTimeout()); err != nil {
		log.Printf("⚠️ Failed to fill the cover-letter field: %v", err)
		return
	}
	log.Println("✅ Cover-letter text inserted.")
}

func (r *Responder) submitLetter() {
	if err := r.ctrl.ScriptClick(submitSelector, r.waitTimeout()); err != nil {
		log.Printf("⚠️ Cover-letter submit button not clicked: %v", err)
		return
	}
	log.Println("🎯 Cover-letter submit button clicked.")

	//the button disappearing confirms the submission went through
	if err := r.ctrl.WaitHidden(submitSelector, r.waitTimeout()); err != nil {
		log.Printf("⚠️ Cover-letter submit confirmation not observed: %v", err)
		return
	}
	log.Println("✅ Cover letter sent.")
}

// Redirected returns the vacancies skipped because apply navigated away.
func (r *Responder) Redirected() []vacancy.Vacancy {
	return r.redirected
}

func (r *Responder) printRedirected() {
	if len(r.redirected) == 0 {
		return
	}
	log.Println("🔁 Vacancies redirecting to external sites:")
	for _, v := range r.redirected {
		log.Printf("🔗 %s | %s | %s", v.Title, v.Employer, v.Link)
	}
}

func (r *Responder) captureFailure(name string) {
	if r.shots == nil {
		return
	}
	r.shots.CaptureAndLog(r.ctrl, name, "Capturing failure screenshot: "+name)
}

func (r *Responder) waitTimeout() time.Duration {
	return time.Duration(r.delays.WaitTimeoutMs) * time.Millisecond
}
