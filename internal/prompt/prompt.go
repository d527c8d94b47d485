package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Prompter is the human-input collaborator. Every blocking console prompt the
// pipeline needs goes through here so automated tests can script the answers.
// Prompts block indefinitely; there is no timeout on human input.
type Prompter interface {
	//AccountName asks for the base name of a new or existing account
	AccountName() string
	//SearchURLs asks for search URLs one per line; empty slice means "keep current"
	SearchURLs() []string
	//CoverLetter asks for the cover-letter text; empty means "keep current"
	CoverLetter() string
	//ExcludedWords asks for a comma-separated exclusion list; empty means "keep current"
	ExcludedWords() []string
	//WaitForLogin pauses until the user confirms they logged in manually
	WaitForLogin()
	//ChooseIndex asks for a 1-based index until a valid one is entered
	ChooseIndex(max int) int
}

// StdinPrompter reads answers from standard input.
type StdinPrompter struct {
	reader *bufio.Reader
}

func NewStdinPrompter() *StdinPrompter {
	return &StdinPrompter{reader: bufio.NewReader(os.Stdin)}
}

func (p *StdinPrompter) readLine(label string) string {
	fmt.Print(label)
	line, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (p *StdinPrompter) AccountName() string {
	return p.readLine("📝 Enter account name (e.g. main, work, alt1): ")
}

func (p *StdinPrompter) SearchURLs() []string {
	fmt.Println("🔗 Enter search URLs, one per line. Empty line finishes.")
	fmt.Println("   (Leave the first line empty to keep the current URLs.)")
	var urls []string
	first := p.readLine("URL: ")
	if first == "" {
		return nil
	}
	urls = append(urls, first)
	for {
		url := p.readLine("URL: ")
		if url == "" {
			break
		}
		urls = append(urls, url)
	}
	return urls
}

func (p *StdinPrompter) CoverLetter() string {
	return p.readLine("⌨️  Enter cover-letter text (empty keeps the current one): ")
}

func (p *StdinPrompter) ExcludedWords() []string {
	line := p.readLine("📛 Enter excluded words, comma-separated (empty keeps the current ones): ")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	var words []string
	for _, word := range strings.Split(line, ",") {
		if w := strings.TrimSpace(word); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func (p *StdinPrompter) WaitForLogin() {
	p.readLine("🔐 Log in manually and press Enter...")
}

func (p *StdinPrompter) ChooseIndex(max int) int {
	for {
		choice := p.readLine("🔢 Enter account number: ")
		index, err := parseIndex(choice, max)
		if err != nil {
			fmt.Println("❌ Invalid choice. Try again.")
			continue
		}
		return index
	}
}

func parseIndex(s string, max int) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if index < 1 || index > max {
		return 0, fmt.Errorf("index %d out of range 1..%d", index, max)
	}
	return index, nil
}
