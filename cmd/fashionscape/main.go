// Package main provides the fashionscape command: an outfit preview and swap
// shell served on the terminal or over Telnet, plus batch shuffle and outfit
// file checks.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
