// Command console runs the interactive marks-entry session on stdin/stdout.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/classrank/classrank/internal/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sh := shell.New(os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil {
		os.Stderr.WriteString("session failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
