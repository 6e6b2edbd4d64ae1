package tap

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValueArgDecode(t *testing.T) {
	num := NewValueArg[int]("a number", 5, "n")

	assert.Equal(t, 5, num.Value(), "default value before parsing")
	assert.NoError(t, num.SetValue("7"))
	assert.Equal(t, 7, num.Value())
	assert.Equal(t, 1, num.Count())
}

func TestValueArgInvalidValueKeepsStored(t *testing.T) {
	num := NewValueArg[int]("a number", 5, "n")

	err := num.SetValue("notanumber")
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "notanumber", invalid.Value)
	assert.EqualError(t, err, "argument -n value does not accept the value notanumber")
	assert.Equal(t, 5, num.Value(), "failed decode leaves the stored value untouched")
	assert.Equal(t, 0, num.Count())
}

func TestValueArgDecodeKinds(t *testing.T) {
	cases := []struct {
		about string
		check func(t *testing.T)
	}{{
		"string", func(t *testing.T) {
			v := NewValueArg[string]("s", "", "s")
			assert.NoError(t, v.SetValue("hello"))
			assert.Equal(t, "hello", v.Value())
		},
	}, {
		"int accepts hex", func(t *testing.T) {
			v := NewValueArg[int]("n", 0, "n")
			assert.NoError(t, v.SetValue("0x10"))
			assert.Equal(t, 16, v.Value())
		},
	}, {
		"uint rejects negative", func(t *testing.T) {
			v := NewValueArg[uint]("n", 0, "n")
			assert.Error(t, v.SetValue("-1"))
		},
	}, {
		"float", func(t *testing.T) {
			v := NewValueArg[float64]("f", 0, "f")
			assert.NoError(t, v.SetValue("3.25"))
			assert.Equal(t, 3.25, v.Value())
		},
	}, {
		"duration", func(t *testing.T) {
			v := NewValueArg[time.Duration]("d", 0, "d")
			assert.NoError(t, v.SetValue("1h30m"))
			assert.Equal(t, 90*time.Minute, v.Value())
		},
	}}
	for _, c := range cases {
		t.Run(c.about, c.check)
	}
}

// listValue decodes comma separated tokens.
type listValue []string

func (l *listValue) FromString(s string) error {
	if s == "" {
		return errors.New("empty list")
	}
	*l = strings.Split(s, ",")
	return nil
}

func (l *listValue) Example() string { return "a,b,c" }

func TestCustomParseType(t *testing.T) {
	v := NewValueArg[listValue]("names", nil, "l")

	assert.NoError(t, v.SetValue("alice,bob"))
	if diff := cmp.Diff(listValue{"alice", "bob"}, v.Value()); diff != "" {
		t.Fatal(diff)
	}

	err := v.SetValue("")
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestVarArgExternalStorage(t *testing.T) {
	var port int
	v := NewVarArg("port", &port, "p")

	assert.NoError(t, v.SetValue("8080"))
	assert.Equal(t, 8080, port)
}

func TestValueArgSetPanics(t *testing.T) {
	v := NewValueArg[int]("n", 0, "n")
	assert.Panics(t, func() { v.Set() })
}

func TestValueArgCheckValue(t *testing.T) {
	v := NewValueArg[int]("port", 0, "p").
		CheckValue(func(_ *ValueArg[int], port int) error {
			if port < 1024 {
				return errors.New("privileged port")
			}
			return nil
		})

	assert.NoError(t, v.SetValue("8080"))
	assert.EqualError(t, v.SetValue("80"), "privileged port")
}

func TestMultiValueAppend(t *testing.T) {
	v := NewMultiValueArg[int]("numbers", "n")

	assert.NoError(t, v.SetValue("1"))
	assert.NoError(t, v.SetValue("2"))
	assert.NoError(t, v.SetValue("3"))
	if diff := cmp.Diff([]int{1, 2, 3}, v.Value()); diff != "" {
		t.Fatal(diff)
	}
	assert.Equal(t, 3, v.Count())

	assert.Error(t, v.SetValue("x"))
	if diff := cmp.Diff([]int{1, 2, 3}, v.Value()); diff != "" {
		t.Fatal("failed decode must not append:", diff)
	}
}

func TestMultiValueClonesShareStorage(t *testing.T) {
	v := NewMultiValueArg[string]("names", "n")
	dup := v.Clone().(*MultiValueArg[string])

	assert.NoError(t, dup.SetValue("alice"))
	assert.NoError(t, v.SetValue("bob"))
	if diff := cmp.Diff([]string{"alice", "bob"}, v.Value()); diff != "" {
		t.Fatal(diff)
	}
	assert.Equal(t, 2, dup.Count())
}

func TestConstArg(t *testing.T) {
	level := 0
	quiet := NewConstArg("be quiet", &level, -1, "q")
	loud := NewConstArg("be loud", &level, 1, "l")

	assert.NoError(t, quiet.Set())
	assert.Equal(t, -1, level)
	assert.NoError(t, loud.Set())
	assert.Equal(t, 1, level)
	assert.False(t, quiet.TakesValue())
}

func TestConstArgWithoutAliasPanics(t *testing.T) {
	var level int
	assert.Panics(t, func() { NewConstArg("q", &level, 1) })
}

func TestSwitchToggle(t *testing.T) {
	s := NewSwitchArg("toggle", "t")
	s.Many(true)

	assert.False(t, s.Value())
	assert.NoError(t, s.Set())
	assert.True(t, s.Value())
	assert.NoError(t, s.Set())
	assert.False(t, s.Value(), "occurrences alternate the switch")
	assert.Equal(t, 2, s.Count())
}

func TestSwitchVar(t *testing.T) {
	verbose := true
	s := NewSwitchVar("no verbose", &verbose, "q")

	assert.NoError(t, s.Set())
	assert.False(t, verbose)
}

func TestSwitchWithoutAliasPanics(t *testing.T) {
	assert.Panics(t, func() { NewSwitchArg("t") })
}

func TestBoolValueArgNeverTakesValue(t *testing.T) {
	v := NewValueArg[bool]("b", false, "b")
	assert.False(t, v.TakesValue())
	assert.Panics(t, func() { v.SetValue("true") })
}

func TestValueUsageAndIdent(t *testing.T) {
	named := NewValueArg[int]("n", 0, "n", "number").ValueName("count")
	assert.Equal(t, "-n count", named.Usage())
	assert.Equal(t, "-n, --number", named.Ident())

	longOnly := NewValueArg[int]("n", 0, "number")
	assert.Equal(t, "--number value", longOnly.Usage())

	positional := NewValueArg[string]("input", "").ValueName("file")
	assert.Equal(t, "file", positional.Usage())
	assert.Equal(t, "file", positional.Ident())
	assert.True(t, positional.Matches())

	unbounded := NewMultiValueArg[string]("inputs").ValueName("file")
	assert.Equal(t, "file...", unbounded.Usage())
}
