package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/layoutrender/cmd/layoutrender/commands"
	foundationerrors "git.home.luguber.info/inful/layoutrender/internal/foundation/errors"
	"git.home.luguber.info/inful/layoutrender/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("layoutrender"),
		kong.Description("Render layout templates through their extension's converter"),
		kong.Vars{"version": version.Version},
		kong.UsageOnError(),
	)

	if err := ctx.Run(&commands.Global{}, cli); err != nil {
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
	}
}
