package tap

import (
	"strings"

	"github.com/fatih/color"
)

// Help generates the help text: a usage line assembled from the set
// usage strings, followed by one section per non-empty set listing
// identifier and description columns.
func (p *Parser) Help() string {
	return p.renderHelp(nil)
}

// ColorHelp renders the same help text with highlighted section
// headers. Highlighting is dropped automatically on dumb terminals,
// pipes and when NO_COLOR is set.
func (p *Parser) ColorHelp() string {
	return p.renderHelp(color.New(color.Bold))
}

func (p *Parser) renderHelp(heading *color.Color) string {
	sprint := func(s string) string {
		if heading == nil {
			return s
		}
		return heading.Sprint(s)
	}

	maxLength := 0
	for _, set := range p.sets {
		for _, arg := range set.Args() {
			maxLength = maxInt(maxLength, len(arg.Ident()))
		}
	}
	maxLength += 2

	var b strings.Builder
	b.WriteString(sprint("Usage:"))
	b.WriteString(" ")
	if p.programName != "" {
		b.WriteString(p.programName)
		b.WriteString(" ")
	}
	b.WriteString(p.sets[0].Usage())
	for _, set := range p.sets[1:] {
		if set.Size() == 0 {
			continue
		}
		b.WriteString(" ")
		b.WriteString(set.Usage())
	}
	b.WriteString("\n")

	for _, set := range p.sets {
		if set.Size() == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(sprint(set.Name() + ":"))
		b.WriteString("\n")
		for _, arg := range set.Args() {
			b.WriteString("  ")
			b.WriteString(appendSpacesToLength(arg.Ident(), maxLength))
			b.WriteString(arg.Description())
			b.WriteString("\n")
		}
	}

	return b.String()
}

func maxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func appendSpacesToLength(s string, toLength int) string {
	if need := toLength - len(s); need > 0 {
		return s + strings.Repeat(" ", need)
	}
	return s
}
