package search

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPredicate_EscapesMetacharacters(t *testing.T) {
	p := BuildPredicate("a.b")

	assert.Equal(t, FieldName, p.Field)
	assert.Equal(t, `a\.b`, p.Pattern)
	assert.True(t, p.Matches("xa.by"))
	assert.False(t, p.Matches("axby"))
}

func TestBuildPredicate_CaseInsensitiveSubstring(t *testing.T) {
	p := BuildPredicate("sushi")

	assert.True(t, p.Matches("Sushi Zanmai"))
	assert.True(t, p.Matches("Best SUSHI in town"))
	assert.False(t, p.Matches("Ramen House"))
}

func TestBuildPredicate_HostileInput(t *testing.T) {
	for _, kw := range []string{"(", "[a-z", "*", "a|b", `\`, "^$", "x{2,}"} {
		p := BuildPredicate(kw)
		assert.True(t, p.Matches("prefix"+kw+"suffix"), "keyword %q", kw)
	}
	assert.False(t, BuildPredicate("a|b").Matches("a"))
}

func TestBuildPredicate_Empty(t *testing.T) {
	p := BuildPredicate("   ")
	assert.True(t, p.MatchesAll())
	assert.True(t, p.Matches("anything"))
}

func TestPredicate_ZeroValueCompiles(t *testing.T) {
	p := Predicate{Field: FieldName, Pattern: `a\.b`}
	assert.True(t, p.Matches("A.B"))
}

func TestBuildPredicate_InvalidUTF8(t *testing.T) {
	for _, kw := range []string{"caf\xff", "\xff", "\xc3", "a.\xfeb"} {
		var p Predicate
		require.NotPanics(t, func() { p = BuildPredicate(kw) }, "keyword %q", kw)
		assert.True(t, utf8.ValidString(p.Pattern), "keyword %q", kw)
	}

	assert.True(t, BuildPredicate("caf\xff").Matches("Cafe Ole"))
	assert.True(t, BuildPredicate("\xff").MatchesAll())
	assert.True(t, BuildPredicate("a.\xfeb").Matches("xa.by"))
}

func TestPredicate_UncompilablePatternNeverMatches(t *testing.T) {
	p := Predicate{Field: FieldName, Pattern: "("}
	assert.NotPanics(t, func() { assert.False(t, p.Matches("(")) })
}
