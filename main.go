package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Deinys/SmartHome-Backend/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
