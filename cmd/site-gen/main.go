package main

import (
	"github.com/alecthomas/kong"

	"github.com/toddself/site-gen/cmd/site-gen/commands"
	"github.com/toddself/site-gen/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("site-gen"),
		kong.Description("Static site blog generator: markdown entries in, paginated HTML plus a tag index and feed out."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
