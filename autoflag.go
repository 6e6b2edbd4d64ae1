package tap

import "unicode"

// ParseAliases scans a description for alias markers and returns the
// cleaned description together with the extracted flags and names.
// Markers:
//
//	%  the next character is a flag
//	$  the next word is a name
//	&  the next character is a flag and starts a name
//
// Words end at the first non-alphanumeric character; empty names are
// ignored. A backslash escapes the following character. The marker
// characters are removed from the description, the aliased text stays.
//
// For example, "Show this &help text" yields the flag 'h' and the name
// "help" with the description "Show this help text".
//
// This is a preprocessing convenience producing ordinary aliases; the
// argument model itself is unaware of marker syntax.
func ParseAliases(description string) (clean string, flags []rune, names []string) {
	var out []rune
	var nameBuf []rune
	addFlag, addName, escape := false, false, false

	endName := func() {
		if len(nameBuf) > 0 {
			names = append(names, string(nameBuf))
			nameBuf = nil
		}
		addName = false
	}

	for _, c := range description {
		if escape {
			if c != '%' && c != '$' && c != '&' && c != '\\' {
				out = append(out, '\\')
			}
			out = append(out, c)
			escape = false
			continue
		}

		if addFlag {
			flags = append(flags, c)
			addFlag = false
			out = append(out, c)
			if addName {
				// an & marker starts the name at the flag character
				nameBuf = append(nameBuf, c)
			}
			continue
		}

		if addName {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				endName()
			} else {
				nameBuf = append(nameBuf, c)
				out = append(out, c)
				continue
			}
		}

		switch c {
		case '\\':
			escape = true
		case '%':
			addFlag = true
		case '$':
			addName = true
			nameBuf = nil
		case '&':
			addFlag = true
			addName = true
			nameBuf = nil
		default:
			out = append(out, c)
		}
	}
	if addName {
		endName()
	}

	return string(out), flags, names
}

// NewAutoArgument creates an argument whose aliases are taken from
// markers in the description. A description without any marker is
// programmer misuse, since a plain argument cannot be positional.
func NewAutoArgument(description string) *Argument {
	clean, flags, names := ParseAliases(description)
	if len(flags) == 0 && len(names) == 0 {
		panic(panicNoAutoAlias)
	}
	a := newArgument(clean, nil)
	a.positional = false
	a.flags = flags
	a.names = names
	return a
}
