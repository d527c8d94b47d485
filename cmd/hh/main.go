// Package main is the hh.ru vacancy crawler and auto-responder CLI.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"go-hh-automation/internal/account"
	"go-hh-automation/internal/browser"
	"go-hh-automation/internal/config"
	"go-hh-automation/internal/crawler"
	"go-hh-automation/internal/prompt"
	"go-hh-automation/internal/report"
	"go-hh-automation/internal/responder"
	"go-hh-automation/internal/session"
	"go-hh-automation/internal/vacancy"
	"go-hh-automation/utils"
)

var (
	maxPages     int
	accountIndex int
	listAccounts bool
	headless     bool
	addAccount   bool
)

var rootCmd = &cobra.Command{
	Use:   "hh-automation",
	Short: "hh.ru vacancy crawler + auto-responder",
	Long:  "Crawls configured hh.ru search pages for vacancies, filters them by excluded words, and submits applications with an optional cover letter.",
	RunE:  run,
}

func init() {
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 5, "maximum pages crawled per search URL")
	rootCmd.Flags().IntVar(&accountIndex, "account", 0, "select account by 1-based list index")
	rootCmd.Flags().BoolVar(&listAccounts, "accounts", false, "print the account list and exit")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a visible window")
	rootCmd.Flags().BoolVar(&addAccount, "add-account", false, "run the account registration flow and exit")
}

func main() {
	//load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	store := account.NewStore(cfg.AccountsDir)

	if listAccounts {
		store.Show()
		return nil
	}

	prompter := prompt.NewStdinPrompter()

	//one browser session drives the whole run
	pm, err := browser.NewPlaywright(headless)
	if err != nil {
		return fmt.Errorf("failed to init playwright: %w", err)
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		return err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	ctrl := browser.NewPageController(page)
	log.Println("✅ Browser initialized successfully!")

	if addAccount {
		_, _, err := store.RegisterOrUpdate(ctrl, prompter, cfg.BaseURL)
		return err
	}

	name, err := store.Select(accountIndex, prompter)
	if err != nil {
		return err
	}

	manager := session.NewManager(ctrl, store, prompter, cfg)
	name, err = manager.EnsureLoggedIn(name)
	if err != nil {
		return err
	}

	settings, err := store.GetSettings(name)
	if err != nil {
		return err
	}

	c := crawler.New(ctrl, settings.ExcludedWords, maxPages, cfg.Delays)
	sess := c.CrawlAll(settings.URLs)

	saveVacancies(cfg.LogsDir, sess.Vacancies)

	if len(sess.Vacancies) == 0 {
		log.Println("❌ No vacancies found or all excluded.")
		return nil
	}
	log.Printf("📊 Found %d vacancies.", len(sess.Vacancies))

	shots := utils.NewScreenShotDebugger(cfg.LogsDir)
	r := responder.New(ctrl, settings.VacancyText, cfg.Delays, shots)
	results := r.RespondAll(sess.Vacancies)

	reporter, err := report.NewTelegramReporter(cfg)
	if err != nil {
		log.Printf("⚠️ Telegram reporter disabled: %v", err)
	} else if reporter != nil {
		if err := reporter.SendRunSummary(len(sess.Vacancies), results); err != nil {
			log.Printf("⚠️ Failed to send Telegram summary: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
	return nil
}

func saveVacancies(logsDir string, vacancies []vacancy.Vacancy) {
	if len(vacancies) == 0 {
		return
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	filename := fmt.Sprintf("vacancies-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(logsDir, filename)

	data, err := json.MarshalIndent(vacancies, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal vacancies to JSON: %v", err)
		return
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write vacancies file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", path)
}
