package main

import (
	"fmt"
	"log"

	"go-hh-automation/internal/browser"
)

func main() {
	fmt.Println("🌐 Testing browser manager...")

	pm, err := browser.NewPlaywright(false)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	fmt.Println("✅ Browser context created")

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}
	ctrl := browser.NewPageController(page)

	fmt.Println("🔍 Navigating to hh.ru...")
	if err := ctrl.Navigate("https://hh.ru"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	fmt.Printf("✅ Current URL: %s\n", ctrl.CurrentURL())

	if err := ctrl.Screenshot("hh-test.png"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: hh-test.png")
	}
	fmt.Println("✨ Test complete!")
}
