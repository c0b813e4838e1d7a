package parley

import "testing"

func lineText(tile any) Line {
	return SplitLine(tile.(string))
}

func TestFuzzySearch(t *testing.T) {
	score := FuzzySearch(lineText)

	t.Run("MatchesSubset", func(t *testing.T) {
		if _, ok := score(SplitLine("bt"), "beta"); !ok {
			t.Error("expected a match")
		}
	})

	t.Run("ConsumesOccurrences", func(t *testing.T) {
		if _, ok := score(SplitLine("aa"), "beta"); ok {
			t.Error("one a must not satisfy two")
		}
		if _, ok := score(SplitLine("aa"), "gamma"); !ok {
			t.Error("expected a match")
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		if _, ok := score(SplitLine("B"), "beta"); !ok {
			t.Error("expected a match")
		}
	})

	t.Run("RejectsMissing", func(t *testing.T) {
		if _, ok := score(SplitLine("z"), "beta"); ok {
			t.Error("expected no match")
		}
	})

	t.Run("TighterRanksHigher", func(t *testing.T) {
		near, _ := score(SplitLine("be"), "beta")
		far, _ := score(SplitLine("be"), "cube")
		if near <= far {
			t.Errorf("near %v, far %v", near, far)
		}
	})
}

func TestParseFzfQuery(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		q := ParseFzfQuery("  ")
		if !q.Empty() {
			t.Error("expected an empty query")
		}
		if _, ok := q.Score("anything"); !ok {
			t.Error("an empty query matches everything")
		}
	})

	t.Run("AndTerms", func(t *testing.T) {
		q := ParseFzfQuery("foo bar")
		if _, ok := q.Score("foobar"); !ok {
			t.Error("expected both terms to match")
		}
		if _, ok := q.Score("foo"); ok {
			t.Error("one missing term must fail")
		}
	})

	t.Run("OrGroups", func(t *testing.T) {
		q := ParseFzfQuery("foo | bar")
		if _, ok := q.Score("a bar"); !ok {
			t.Error("expected the second group to match")
		}
		if _, ok := q.Score("baz"); ok {
			t.Error("expected no group to match")
		}
	})

	t.Run("Exact", func(t *testing.T) {
		q := ParseFzfQuery("'oba")
		if _, ok := q.Score("foobar"); !ok {
			t.Error("expected a substring match")
		}
		if _, ok := q.Score("obra"); ok {
			t.Error("fuzzy match must not satisfy exact")
		}
	})

	t.Run("Prefix", func(t *testing.T) {
		q := ParseFzfQuery("^foo")
		if _, ok := q.Score("foobar"); !ok {
			t.Error("expected a prefix match")
		}
		if _, ok := q.Score("barfoo"); ok {
			t.Error("expected no prefix match")
		}
	})

	t.Run("Suffix", func(t *testing.T) {
		q := ParseFzfQuery("bar$")
		if _, ok := q.Score("foobar"); !ok {
			t.Error("expected a suffix match")
		}
		if _, ok := q.Score("barfoo"); ok {
			t.Error("expected no suffix match")
		}
	})

	t.Run("Negation", func(t *testing.T) {
		q := ParseFzfQuery("!foo")
		if _, ok := q.Score("bar"); !ok {
			t.Error("expected the negation to pass")
		}
		if _, ok := q.Score("foo"); ok {
			t.Error("expected the negation to fail")
		}
	})

	t.Run("SmartCase", func(t *testing.T) {
		q := ParseFzfQuery("Foo")
		if _, ok := q.Score("foobar"); ok {
			t.Error("uppercase pattern must match case sensitively")
		}
		if _, ok := q.Score("Foobar"); !ok {
			t.Error("expected a case sensitive match")
		}
	})
}

func TestFzfSearch(t *testing.T) {
	score := FzfSearch(lineText)

	t.Run("FiltersByQuery", func(t *testing.T) {
		if _, ok := score(SplitLine("^be"), "beta"); !ok {
			t.Error("expected a match")
		}
		if _, ok := score(SplitLine("^be"), "alpha"); ok {
			t.Error("expected no match")
		}
	})

	t.Run("IgnoresStyling", func(t *testing.T) {
		painted := PaintText("\x1b[31m", "beta")
		if _, ok := score(SplitLine("beta"), painted); !ok {
			t.Error("expected styling stripped before matching")
		}
	})
}
