// Command modelgen prints model classes for content types read from catalog
// documents, OpenAPI documents or a SQLite database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "modelgen: %v\n", err)
		stop()
		os.Exit(1)
	}
}
