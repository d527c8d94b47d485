package report

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-hh-automation/internal/config"
	"go-hh-automation/internal/responder"
)

// TelegramReporter sends an optional end-of-run summary. A missing token
// disables reporting entirely.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	if cfg.TelegramToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendRunSummary reports how the run went: vacancies found and the outcome
// counts, plus the redirect report.
func (t *TelegramReporter) SendRunSummary(found int, results []responder.Result) error {
	counts := make(map[responder.Outcome]int)
	var redirected []responder.Result
	for _, res := range results {
		counts[res.Outcome]++
		if res.Outcome == responder.OutcomeSkippedRedirect {
			redirected = append(redirected, res)
		}
	}

	text := fmt.Sprintf(
		"🤖 <b>hh.ru run finished</b>\n"+
			"🔍 Found: %d\n"+
			"✅ Submitted: %d\n"+
			"📝 With letter: %d\n"+
			"🚫 Redirected: %d\n"+
			"⚠️ Errors: %d\n",
		found,
		counts[responder.OutcomeSubmitted],
		counts[responder.OutcomeSubmittedWithLetter],
		counts[responder.OutcomeSkippedRedirect],
		counts[responder.OutcomeError],
	)
	if counts[responder.OutcomeRateLimited] > 0 {
		text += "🛑 Run stopped early: application rate limit reached.\n"
	}
	for _, res := range redirected {
		text += fmt.Sprintf("🔗 %s | %s\n%s\n", res.Vacancy.Title, res.Vacancy.Employer, res.Vacancy.Link)
	}

	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>hh.ru automation error</b>:\n%v", errReq))
}
