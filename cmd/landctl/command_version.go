package main

import (
	"fmt"
	"io"
)

type VersionCommand struct {
	stdout  io.Writer
	version string
}

func NewVersionCommand(stdout io.Writer, version string) *VersionCommand {
	return &VersionCommand{
		stdout:  stdout,
		version: version,
	}
}

func (c *VersionCommand) Run(args []string) error {
	fmt.Fprintf(c.stdout, "landctl %s\n", c.version)
	return nil
}
