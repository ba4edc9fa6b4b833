package lexical

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	set := ParseList("# comment\nrun\n\n  Jump  \n# another\nswim\n")

	require.Equal(t, 3, set.Len())
	require.True(t, set.Contains("run"))
	require.True(t, set.Contains("jump"))
	require.True(t, set.Contains("swim"))
	require.False(t, set.Contains("# comment"))
}

func TestSetIsCaseInsensitive(t *testing.T) {
	set := NewSet([]string{"Grow"})
	require.True(t, set.Contains("grow"))
	require.True(t, set.Contains("GROW"))
	require.False(t, set.Contains("grown"))
}

func TestVerbsEmbeddedList(t *testing.T) {
	verbs := Verbs()

	require.Greater(t, verbs.Len(), 100)
	for _, w := range []string{"improve", "grow", "measure", "reduce"} {
		require.True(t, verbs.Contains(w), "expected verb %q", w)
	}
	for _, w := range []string{"mortality", "population", "gdp"} {
		require.False(t, verbs.Contains(w), "did not expect %q", w)
	}
}

func TestVerbsParsedOnce(t *testing.T) {
	require.Same(t, Verbs(), Verbs())
}
