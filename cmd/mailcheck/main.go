package main

import (
	"context"
	"fmt"
	"os"
	"pwreset/internal/app/deps"
	"time"
)

// Checks that the configured mail transport accepts messages.
func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := deps.Mailer.Verify(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mailer %s: %v\n", deps.Config.Mailer, err)
		os.Exit(1)
	}
	fmt.Printf("mailer %s: ok\n", deps.Config.Mailer)
}
