package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const rootDescription = `Decodes <path> and writes <path>.xml next to it.
A path spelled like a command name runs that command. Use ./<name> or
"xfsconv convert <name>" to convert such a file.`

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "xfsconv",
		Usage:       "Convert XFS containers to XML",
		ArgsUsage:   "<path>",
		Description: rootDescription,
		Flags:       globalFlags(),
		Before:      setup,
		Action:      convertDefault,
		Commands: []*cli.Command{
			convertCmd(),
			inspectCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}
