package main

import (
	"fmt"
	"os"

	"github.com/tapcli/tap"
)

func main() {
	help := tap.NewArgument("print this help text", "h", "help")
	verbose := tap.NewArgument("be more talkative, may be repeated", "v", "verbose").
		Many(true)
	host := tap.NewValueArg[string]("hostname to connect to", "host.com", "host")
	port := tap.NewValueArg[int]("port to connect to", 80, "p", "port")
	useTCP := tap.NewArgument("use tcp", "t", "tcp")
	useUDP := tap.NewArgument("use udp", "u", "udp")
	files := tap.NewMultiValueArg[string]("files to transfer").
		ValueName("file")

	parser := tap.NewParser(help, verbose, host, port, useTCP, useUDP, files).
		SetProgramName("transfer")

	// exactly one transport must be picked
	parser.AddConstraint(
		tap.NewConstraint(tap.One, useTCP, useUDP).SetRequired(true),
	)

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, parser.Help())
		os.Exit(2)
	}
	if help.IsSet() {
		fmt.Print(parser.ColorHelp())
		return
	}

	fmt.Printf("host=%s port=%d verbosity=%d tcp=%v files=%v\n",
		host.Value(), port.Value(), verbose.Count(), useTCP.IsSet(), files.Value())
}
