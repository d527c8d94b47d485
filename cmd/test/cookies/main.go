package main

import (
	"fmt"
	"log"
	"os"

	"go-hh-automation/internal/browser"
)

func main() {
	fmt.Println("🍪 Testing cookie loading...")

	path := "accounts/main/cookies.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cookies, err := browser.LoadCookies(path)
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		fmt.Printf("Domain: %s\n", c.Domain)
		fmt.Printf("Secure: %t\n", c.Secure)
		fmt.Printf("SameSite stripped: %t\n", c.SameSite == "")
	}
}
