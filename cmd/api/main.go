package main

import (
	"context"
	"fmt"
	"os"

	"user-crud-service/cmd/api/app"
	"user-crud-service/cmd/api/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "application exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	application, err := app.New()
	if err != nil {
		return err
	}

	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	return application.Run(ctx)
}
