package view

import (
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func membersWithScores(scores []int) []member {
	out := make([]member, len(scores))
	for i, s := range scores {
		out[i] = member{ID: strconv.Itoa(i), Name: "m" + strconv.Itoa(i), Score: float64(s)}
	}
	return out
}

func membersWithNames(names []string) []member {
	out := make([]member, len(names))
	for i, n := range names {
		out[i] = member{ID: strconv.Itoa(i), Name: n}
	}
	return out
}

func TestProperty_Paginate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pages concatenate back to the collection", prop.ForAll(
		func(scores []int, pageSize int) bool {
			items := membersWithScores(scores)
			total := TotalPages(len(items), pageSize)

			var joined []member
			for p := 1; p <= total; p++ {
				page := Paginate(items, p, pageSize)
				if len(page.Items) > pageSize {
					return false
				}
				joined = append(joined, page.Items...)
			}
			return slices.Equal(ids(joined), ids(items))
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.IntRange(1, 15),
	))

	properties.Property("requested page is clamped and stable", prop.ForAll(
		func(n, page, pageSize int) bool {
			items := membersWithScores(make([]int, n))
			a := Paginate(items, page, pageSize)
			b := Paginate(items, a.Meta.Page, pageSize)
			return a.Meta == b.Meta &&
				a.Meta.Page >= 1 && a.Meta.Page <= a.Meta.TotalPages &&
				slices.Equal(ids(a.Items), ids(b.Items))
		},
		gen.IntRange(0, 60),
		gen.IntRange(-5, 20),
		gen.IntRange(1, 15),
	))

	properties.TestingRun(t)
}

func TestProperty_Sort(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// ordered reports whether items are monotonic in d with ties in
	// original (id) order.
	ordered := func(items []member, d Direction) bool {
		for i := 1; i < len(items); i++ {
			a, b := items[i-1], items[i]
			if a.Score == b.Score {
				ai, _ := strconv.Atoi(a.ID)
				bi, _ := strconv.Atoi(b.ID)
				if ai > bi {
					return false
				}
				continue
			}
			if (d == Asc) != (a.Score < b.Score) {
				return false
			}
		}
		return true
	}

	properties.Property("both directions are stable and monotonic", prop.ForAll(
		func(scores []int) bool {
			items := membersWithScores(scores)
			return ordered(Sort(items, SortBy("score", Asc), memberSchema), Asc) &&
				ordered(Sort(items, SortBy("score", Desc), memberSchema), Desc)
		},
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.Property("desc reverses asc when keys are distinct", prop.ForAll(
		func(scores []int) bool {
			seen := map[int]bool{}
			var distinct []int
			for _, s := range scores {
				if !seen[s] {
					seen[s] = true
					distinct = append(distinct, s)
				}
			}
			items := membersWithScores(distinct)
			asc := ids(Sort(items, SortBy("score", Asc), memberSchema))
			desc := ids(Sort(items, SortBy("score", Desc), memberSchema))
			slices.Reverse(desc)
			return slices.Equal(asc, desc)
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("no sort is identity", prop.ForAll(
		func(scores []int) bool {
			items := membersWithScores(scores)
			return slices.Equal(ids(Sort(items, SortState{}, memberSchema)), ids(items))
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

func TestProperty_Search(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)
	keys := []string{"name"}

	properties.Property("blank query is identity", prop.ForAll(
		func(names []string, pad int) bool {
			items := membersWithNames(names)
			q := strings.Repeat(" ", pad)
			return slices.Equal(ids(Search(items, q, keys, memberSchema, DefaultThreshold)), ids(items))
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(0, 3),
	))

	properties.Property("threshold 0 is case-insensitive substring", prop.ForAll(
		func(names []string, q string) bool {
			if q == "" {
				return true
			}
			items := membersWithNames(names)
			var want []string
			for _, m := range items {
				if strings.Contains(strings.ToLower(m.Name), strings.ToLower(q)) {
					want = append(want, m.ID)
				}
			}
			got := ids(Search(items, q, keys, memberSchema, 0))
			return slices.Equal(got, want)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
	))

	properties.Property("never returns more than the collection", prop.ForAll(
		func(names []string, q string) bool {
			items := membersWithNames(names)
			got := Search(items, q, keys, memberSchema, DefaultThreshold)
			return len(got) <= len(items)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
