package main

import (
	"context"
	"os"

	"github.com/mmynk/tripledger/internal/cli"
)

func main() {
	os.Exit(int(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)))
}
