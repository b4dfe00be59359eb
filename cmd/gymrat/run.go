package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start gymrat: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case sig := <-app.Done():
		fmt.Fprintf(os.Stderr, "received %s\n", sig)
	}

	// the server hook bounds itself with SHUTDOWN_TIMEOUT
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop gymrat: %v\n", err)
		os.Exit(1)
	}
}
