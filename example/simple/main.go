package main

import (
	"fmt"
	"os"

	"github.com/tapcli/tap"
)

func main() {
	name := tap.NewValueArg[string]("your name", "you", "name")
	email := tap.NewValueArg[string]("your email", "you@example.com", "email")
	shout := tap.NewSwitchArg("print in upper case", "s", "shout")

	parser := tap.NewParser(name, email, shout)
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, parser.Help())
		os.Exit(2)
	}

	greeting := fmt.Sprintf("hello %s <%s>", name.Value(), email.Value())
	if shout.Value() {
		fmt.Println(toUpper(greeting))
		return
	}
	fmt.Println(greeting)
}

func toUpper(s string) string {
	out := []rune(s)
	for i, c := range out {
		if 'a' <= c && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
