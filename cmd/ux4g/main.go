package main

import (
	"context"
	"os"

	"github.com/goliatone/go-ux4g/cmd/ux4g/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	commands.SetVersion(version)
	os.Exit(commands.Execute(context.Background()))
}
