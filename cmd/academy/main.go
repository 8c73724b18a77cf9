// Command academy serves the academy site API and runs content maintenance
// tasks. Run "academy -h" for usage.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorbulb/nexteliteweb2/pkg/academy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := academy.Main(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
