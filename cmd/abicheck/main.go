// Command abicheck inspects @layout record declarations: it dumps their
// layout, generates their codecs, compares revisions for binary
// compatibility and simulates mismatched callers and libraries.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/alexhholmes/abilayout/internal/logger"
)

func main() {
	// A missing .env is normal
	_ = godotenv.Load()

	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
