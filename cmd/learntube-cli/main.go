package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const usage = `Usage: learntube-cli [-config path] [-json] <command> [flags]

Commands:
  home                              load every category feed
  search -q <query> [-sort s]       search videos (sort: date_latest, date_oldest, popular)
  details -id <videoId>             show details and watch/embed URLs
  play -id <videoId> [-seek 10s] [-mute] [-pause] [-fullscreen]

Example:
  learntube-cli search -q "react hooks" -sort popular
`

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, cancelling...")
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
