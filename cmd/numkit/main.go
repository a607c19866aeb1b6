package main

import (
	"context"
	"os"

	"github.com/agbru/numkit/internal/app"
)

func main() {
	application := app.New(os.Stderr)
	exitCode := application.Run(context.Background(), os.Args[1:], os.Stdout)
	os.Exit(exitCode)
}
