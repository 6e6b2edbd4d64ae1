package tap

import "strings"

// Syntax holds the literal strings steering token classification.
// Changing them changes what counts as a flag, name, delimiter or
// end-of-options marker, not the parsing algorithm.
type Syntax struct {
	FlagPrefix string
	NamePrefix string
	NameDelim  rune
	SkipMarker string
}

// DefaultSyntax is the GNU-style default: "-a", "--alpha",
// "--alpha=value" and "--" to end option parsing.
var DefaultSyntax = Syntax{
	FlagPrefix: "-",
	NamePrefix: "--",
	NameDelim:  '=',
	SkipMarker: "--",
}

// Parser maps a raw argument vector onto declared arguments and
// validates all sets and constraints afterwards. Parsing mutates the
// occurrence cells of the resolved arguments; a failed parse does not
// roll those mutations back. A Parser must not be used from multiple
// goroutines.
type Parser struct {
	sets        []*ArgumentSet
	constraints *ArgumentSet
	programName string
	syntax      Syntax
}

// NewParser creates a parser with the given arguments in its default
// set.
func NewParser(args ...BaseArgument) *Parser {
	return &Parser{
		sets:        []*ArgumentSet{NewArgumentSet("Arguments", args...)},
		constraints: NewArgumentSet("Constraints"),
		syntax:      DefaultSyntax,
	}
}

// SetSyntax overrides the token syntax. Call before Parse.
func (p *Parser) SetSyntax(syntax Syntax) *Parser {
	p.syntax = syntax
	return p
}

// SetProgramName sets the name used in help text. When not set, the
// first element of the parsed argument vector is captured instead.
func (p *Parser) SetProgramName(name string) *Parser {
	p.programName = name
	return p
}

// ProgramName returns the program name.
func (p *Parser) ProgramName() string {
	return p.programName
}

// Add clones the given arguments or constraints into the default set.
func (p *Parser) Add(args ...BaseArgument) *Parser {
	p.sets[0].Add(args...)
	return p
}

// AddSet clones the given set into the parser as an additional section
// and lookup scope.
func (p *Parser) AddSet(set *ArgumentSet) *Parser {
	p.sets = append(p.sets, set.Clone().(*ArgumentSet))
	return p
}

// AddConstraint adds a constraint checked after parsing. Constraints
// are not shown in help; arguments inside them must also be declared
// through Add or AddSet for the parser to resolve them.
func (p *Parser) AddConstraint(constraints ...BaseArgument) *Parser {
	p.constraints.Add(constraints...)
	return p
}

// FindFlag returns the declared argument matching the flag, or nil.
// Resolution prefers the first declared argument still able to accept
// an occurrence, falling back to the last match.
func (p *Parser) FindFlag(flag rune) Arg {
	return p.resolve(func(arg Arg) bool { return arg.MatchesFlag(flag) })
}

// FindName returns the declared argument matching the name, or nil.
func (p *Parser) FindName(name string) Arg {
	return p.resolve(func(arg Arg) bool { return arg.MatchesName(name) })
}

func (p *Parser) findPositional() Arg {
	return p.resolve(func(arg Arg) bool { return arg.Matches() })
}

// resolve scans all sets in declaration order and returns the first
// matching argument that can still be set, or the last matching
// argument when every candidate is exhausted.
func (p *Parser) resolve(matches func(Arg) bool) Arg {
	var last Arg
	for _, set := range p.sets {
		for _, arg := range set.Args() {
			if !matches(arg) {
				continue
			}
			last = arg
			if arg.CanSet() {
				return arg
			}
		}
	}
	return last
}

// Parse consumes the raw argument vector as presented to main. The
// first element is the program invocation name; it is captured as the
// program name unless one was set explicitly. On success all bound
// storage holds final values; on failure a typed error is returned and
// already applied occurrences remain applied.
func (p *Parser) Parse(argv []string) error {
	if len(argv) > 0 {
		if p.programName == "" {
			p.programName = argv[0]
		}
		argv = argv[1:]
	}
	return p.parse(argv)
}

func (p *Parser) parse(args []string) error {
	noParse := false

	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case tok == p.syntax.SkipMarker:
			// everything after the marker is positional
			noParse = true

		case !noParse && strings.HasPrefix(tok, p.syntax.NamePrefix) && tok != p.syntax.NamePrefix:
			name := tok[len(p.syntax.NamePrefix):]
			inline := ""
			hasDelim := false
			if idx := strings.IndexRune(name, p.syntax.NameDelim); idx > 0 {
				inline = name[idx+1:]
				name = name[:idx]
				hasDelim = true
			}

			arg := p.FindName(name)
			if arg == nil {
				return unknownNameErr(p.syntax.NamePrefix, name)
			}

			switch {
			case arg.TakesValue():
				value := inline
				if !hasDelim {
					i++
					if i >= len(args) {
						return missingValueErr(arg)
					}
					value = args[i]
				}
				if err := setArgValue(arg, value); err != nil {
					return err
				}
			case hasDelim:
				return unexpectedValueErr(arg)
			default:
				if err := arg.Set(); err != nil {
					return err
				}
			}

		case !noParse && strings.HasPrefix(tok, p.syntax.FlagPrefix) && tok != p.syntax.FlagPrefix:
			flags := []rune(tok[len(p.syntax.FlagPrefix):])
			var matched Arg
			j := 0
			for ; j < len(flags); j++ {
				matched = p.FindFlag(flags[j])
				if matched == nil {
					return unknownFlagErr(p.syntax.FlagPrefix, flags[j])
				}
				if matched.TakesValue() {
					// the remainder of the cluster is the value
					j++
					break
				}
				if err := matched.Set(); err != nil {
					return err
				}
			}

			if matched != nil && matched.TakesValue() {
				if j < len(flags) {
					if err := setArgValue(matched, string(flags[j:])); err != nil {
						return err
					}
				} else {
					i++
					if i >= len(args) {
						return missingValueErr(matched)
					}
					if err := setArgValue(matched, args[i]); err != nil {
						return err
					}
				}
			}

		default:
			arg := p.findPositional()
			if arg == nil {
				return unknownPositionalErr()
			}
			if arg.TakesValue() {
				if err := setArgValue(arg, tok); err != nil {
					return err
				}
			} else if err := arg.Set(); err != nil {
				return err
			}
		}
	}

	for _, set := range p.sets {
		if err := set.CheckValid(); err != nil {
			return err
		}
	}
	return p.constraints.CheckValid()
}

// setArgValue dispatches a value token through the ValueAcceptor
// capability. Calling it for a non-valued argument is programmer
// misuse.
func setArgValue(arg Arg, value string) error {
	if !arg.TakesValue() {
		panic(panicValueUnvalued)
	}
	acceptor, ok := arg.(ValueAcceptor)
	if !ok {
		panic(panicNoValueIface)
	}
	return acceptor.SetValue(value)
}
