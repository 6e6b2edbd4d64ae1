// Package tap is a declarative command line argument parser.
//
// Arguments are declared up front, composed into constraints and sets,
// and then a Parser maps an argument vector onto them:
//
//	verbose := tap.NewArgument("be talkative", "v", "verbose")
//	output := tap.NewValueArg[string]("output file", "out.txt", "o", "output")
//	parser := tap.NewParser(verbose, output)
//	if err := parser.Parse(os.Args); err != nil {
//		fmt.Fprintln(os.Stderr, err)
//		fmt.Fprint(os.Stderr, parser.Help())
//		os.Exit(2)
//	}
//
// Errors caused by user input are returned as typed errors; misuse of
// the library itself, such as constructing a flag argument without an
// alias, panics.
package tap
