package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tapcli/tap"
)

// addr decodes "host:port" tokens.
type addr struct {
	host string
	port string
}

func (a *addr) FromString(s string) error {
	host, port, ok := strings.Cut(s, ":")
	if !ok || host == "" || port == "" {
		return errors.Errorf("%q is not host:port", s)
	}
	a.host = host
	a.port = port
	return nil
}

func (a *addr) Example() string {
	return "host:port"
}

type settings struct {
	Workers int    `json:"workers" yaml:"workers" toml:"workers"`
	LogFile string `json:"log_file" yaml:"log_file" toml:"log_file"`
}

func main() {
	source := tap.NewValueArg[addr]("source address", addr{"127.0.0.1", "1001"}, "s", "source")

	var cfg tap.FileValue[settings, tap.EnableLiveUpdate]
	config := tap.NewVarArg("configuration file", &cfg, "c", "config")

	parser := tap.NewParser(source, config)
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, parser.Help())
		os.Exit(2)
	}

	fmt.Printf("source: %+v\n", source.Value())
	if config.IsSet() {
		fmt.Printf("settings: %+v\n", *cfg.Get())
		for range cfg.UpdateEvents() {
			fmt.Printf("settings reloaded: %+v\n", *cfg.Get())
		}
	}
}
