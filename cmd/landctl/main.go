package main

import (
	"fmt"
	"os"
)

const usageText = `landctl drives pull request landings from the terminal.

Usage:
  landctl <command> [flags]

Commands:
  status    show the landing job status for a pull request
  checks    show landing blockers and warnings
  land      request a landing for a pull request
  cancel    cancel a landing job by id
  queue     list landing jobs known to the service
  job       show one landing job by id
  history   show locally recorded landing requests
  config    print configuration (effective or defaults)
  ui        open the interactive landing view
  version   print the build version
  help      show help

Flags:
  -h, --help   show help

Examples:
  landctl status --repo mozilla/gecko --pull 4817
  landctl land --repo mozilla/gecko --pull 4817 --acknowledge
  landctl queue
  landctl ui --repo mozilla/gecko --pull 4817
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
