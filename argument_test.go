package tap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasClassification(t *testing.T) {
	arg := NewArgument("test", "a", "beta", "x", "gamma")

	assert.True(t, arg.MatchesFlag('a'))
	assert.True(t, arg.MatchesFlag('x'))
	assert.False(t, arg.MatchesFlag('b'))
	assert.True(t, arg.MatchesName("beta"))
	assert.True(t, arg.MatchesName("gamma"))
	assert.False(t, arg.MatchesName("a"))
	assert.False(t, arg.Matches(), "aliased arguments are not positional")
}

func TestAliasAppend(t *testing.T) {
	arg := NewArgument("test", "a")
	arg.Alias("alpha", "A")

	assert.True(t, arg.MatchesFlag('A'))
	assert.True(t, arg.MatchesName("alpha"))
}

func TestMultibyteFlag(t *testing.T) {
	arg := NewArgument("test", "ä")
	assert.True(t, arg.MatchesFlag('ä'))
	assert.True(t, NewArgument("test", "äh").MatchesName("äh"))
}

func TestNewArgumentWithoutAliasPanics(t *testing.T) {
	assert.Panics(t, func() { NewArgument("test") })
}

func TestSetAndCount(t *testing.T) {
	arg := NewArgument("test", "a")

	assert.False(t, arg.IsSet())
	assert.Equal(t, 0, arg.Count())
	assert.True(t, arg.CanSet())

	assert.NoError(t, arg.Set())
	assert.True(t, arg.IsSet())
	assert.Equal(t, 1, arg.Count())
	assert.False(t, arg.CanSet(), "default maximum is one occurrence")

	arg.Many(true)
	assert.True(t, arg.CanSet())
	assert.NoError(t, arg.Set())
	assert.NoError(t, arg.Set())
	assert.Equal(t, 3, arg.Count())
}

func TestForcedOverOccurrence(t *testing.T) {
	arg := NewArgument("test", "a")

	assert.NoError(t, arg.Set())
	assert.False(t, arg.CanSet())
	// Set does not guard the bound itself, CheckValid reports it
	assert.NoError(t, arg.Set())
	assert.EqualError(t, arg.CheckValid(), "argument -a can only be set once")
}

func TestManyRestoresBound(t *testing.T) {
	arg := NewArgument("test", "a").Many(true)
	arg.Many(false)

	assert.NoError(t, arg.Set())
	assert.False(t, arg.CanSet())
}

func TestMinRaisesMax(t *testing.T) {
	arg := NewArgument("test", "a").Min(3)

	assert.NoError(t, arg.Set())
	assert.NoError(t, arg.Set())
	assert.Error(t, arg.CheckValid(), "two occurrences are below the minimum")
	assert.NoError(t, arg.Set())
	assert.NoError(t, arg.CheckValid())
	assert.False(t, arg.CanSet(), "maximum was raised to the minimum, not beyond")
}

func TestMinZeroPanics(t *testing.T) {
	assert.Panics(t, func() { NewArgument("test", "a").Min(0) })
}

func TestCheckValidBounds(t *testing.T) {
	cases := []struct {
		about   string
		arg     *Argument
		setN    int
		wantErr string
	}{{
		"optional unset is valid",
		NewArgument("test", "a"), 0, "",
	}, {
		"required unset",
		NewArgument("test", "a").SetRequired(true), 0, "argument -a is required",
	}, {
		"over maximum",
		NewArgument("test", "a").Many(true).Max(1), 2, "argument -a can only be set once",
	}, {
		"over larger maximum",
		NewArgument("test", "a").Many(true).Max(2), 3, "argument -a can occur at most 2 times",
	}, {
		"below minimum",
		NewArgument("test", "a").Min(2), 1, "argument -a is required to occur at least 2 times",
	}}
	for _, c := range cases {
		for i := 0; i < c.setN; i++ {
			c.arg.Set()
		}
		err := c.arg.CheckValid()
		if c.wantErr == "" {
			assert.NoError(t, err, c.about)
		} else {
			assert.EqualError(t, err, c.wantErr, c.about)
		}
	}
}

func TestCheckCallback(t *testing.T) {
	calls := 0
	arg := NewArgument("test", "a").Many(true).Check(func(a *Argument) error {
		calls = a.Count()
		return nil
	})

	assert.NoError(t, arg.Set())
	assert.NoError(t, arg.Set())
	assert.Equal(t, 2, calls)
}

func TestCloneSharesCount(t *testing.T) {
	arg := NewArgument("test", "a").Many(true)
	dup := arg.Clone().(*Argument)

	assert.NoError(t, dup.Set())
	assert.Equal(t, 1, arg.Count(), "clones share the occurrence cell")
	assert.NoError(t, arg.Set())
	assert.Equal(t, 2, dup.Count())
	assert.Same(t, arg.sharedCell(), dup.sharedCell())
}

func TestCloneOwnsAliases(t *testing.T) {
	arg := NewArgument("test", "a")
	dup := arg.Clone().(*Argument)
	dup.Alias("extra")

	assert.True(t, dup.MatchesName("extra"))
	assert.False(t, arg.MatchesName("extra"), "aliases added to a clone stay on the clone")
}

func TestUsageAndIdent(t *testing.T) {
	assert.Equal(t, "-a", NewArgument("test", "a", "alpha").Usage())
	assert.Equal(t, "--alpha", NewArgument("test", "alpha").Usage())
	assert.Equal(t, "-a, --alpha", NewArgument("test", "a", "alpha").Ident())
	assert.Equal(t, "-a", NewArgument("test", "a").Ident())
	assert.Equal(t, "--alpha", NewArgument("test", "alpha").Ident())
}

func TestCountMismatchErrorFields(t *testing.T) {
	arg := NewArgument("test", "a").SetRequired(true)
	err := arg.CheckValid()

	var mismatch *CountMismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Count)
	assert.Equal(t, 1, mismatch.Expected)
	assert.Equal(t, "-a", mismatch.Arg().Usage())
}
