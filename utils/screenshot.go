package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Screenshotter is the minimal capture capability the debugger needs.
type Screenshotter interface {
	Screenshot(path string) error
}

// ScreenShotDebugger handles debug screenshots
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger(logsDir string) *ScreenShotDebugger {
	dir := filepath.Join(logsDir, "screenshots")
	os.MkdirAll(dir, 0755)
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

func (s *ScreenShotDebugger) CaptureAndLog(shooter Screenshotter, name, message string) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", name, timestamp)
	path := filepath.Join(s.outputDir, filename)
	log.Printf("📸 %s", message)

	//Take screenshot
	if err := shooter.Screenshot(path); err != nil {
		log.Printf("⚠️ Failed to take screenshot: %v", err)
		return err
	}
	return nil
}
