// Package cmd implements the rbo command line: one subcommand per back
// office tool.
package cmd

import (
	"flag"

	"github.com/etnz/royalty/internal/logging"
	"github.com/google/subcommands"
)

// Commands are the rbo subcommands, in help order.
var Commands = []subcommands.Command{
	&ecadCmd{},
	&splitCmd{},
	&withholdingCmd{},
	&discountCmd{},
	&concatCmd{},
	&normalizeCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "tools"
		if cmd.Name() == "topic" {
			group = "help"
		}
		c.Register(cmd, group)
	}
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
var envFile = flag.String("env", ".env", "File with the database environment variables")

// Init applies the global flags, once they are parsed.
func Init() error {
	return logging.SetLevel(*logLevel)
}
