package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsWithoutMutatingInput(t *testing.T) {
	in := Dataset{
		StartYear: 2026, StartMonth: 1, Months: 1,
		Projects: []Project{{
			ID: "p", Start: -10, End: 500,
			SubProjects: []SubProject{{ID: "s", Start: -4, End: 900}, {ID: "t", Start: 40, End: 2}},
		}},
		Products:  []Product{{ID: "x", Versions: []Version{{ID: "v", Time: 77}}}},
		Feedbacks: []Feedback{{ID: "f", Quality: "bogus"}},
	}
	out := Normalize(in)

	p := out.Projects[0]
	assert.Equal(t, 0, p.Start)
	assert.Equal(t, 31, p.End)
	assert.Equal(t, SubProject{ID: "s", Start: 0, End: 31}, p.SubProjects[0])
	assert.Equal(t, SubProject{ID: "t", Start: 30, End: 31}, p.SubProjects[1])
	assert.Equal(t, 30, out.Products[0].Versions[0].Time)
	assert.Equal(t, QualitySOP, out.Feedbacks[0].Quality)

	assert.Equal(t, -10, in.Projects[0].Start)
	assert.Equal(t, -4, in.Projects[0].SubProjects[0].Start)
	assert.Equal(t, 77, in.Products[0].Versions[0].Time)
	assert.Equal(t, Quality("bogus"), in.Feedbacks[0].Quality)
}

func TestDatasetAxisDefaults(t *testing.T) {
	axis := Dataset{}.Axis()
	assert.Equal(t, "2026-01-01", axis.OffsetToDate(0))
	assert.Equal(t, 1096, axis.Days())
}

func TestVersionSpan(t *testing.T) {
	lo, hi := Product{}.VersionSpan()
	assert.Equal(t, [2]int{0, 0}, [2]int{lo, hi})

	p := Product{Versions: []Version{{Time: 90}, {Time: 30}, {Time: 300}}}
	lo, hi = p.VersionSpan()
	assert.Equal(t, [2]int{30, 300}, [2]int{lo, hi})
}

func TestSelectionToggleNeverDegenerates(t *testing.T) {
	universe := []string{"a", "b", "c"}
	s := ResetSelection()
	require.True(t, s.All())

	s = s.Toggle("b", universe)
	assert.False(t, s.All())
	assert.True(t, s.Includes("a"))
	assert.False(t, s.Includes("b"))

	s = s.Toggle("a", universe).Toggle("c", universe)
	assert.False(t, s.All(), "deselecting the last id must not fall back to all")
	for _, id := range universe {
		assert.False(t, s.Includes(id))
	}

	s = s.Toggle("c", universe)
	assert.True(t, s.Includes("c"))
	assert.True(t, ResetSelection().Includes("b"))
}

func TestSelectIDsEmptyMeansAll(t *testing.T) {
	assert.True(t, SelectIDs().All())
	assert.True(t, SelectIDs("").All())
	s := SelectIDs("x")
	assert.True(t, s.Includes("x"))
	assert.False(t, s.Includes("y"))
}

func TestPruneView(t *testing.T) {
	ds := Demo()
	v := DefaultView()
	v.Hidden = NewIDSet("proj-1", "gone")
	v.Collapsed = NewIDSet("gone-too", "proj-2")
	v.ProjectFilter = SelectIDs("gone")
	v.ProductFilter = SelectIDs("prod-2", "gone")

	got := PruneView(v, ds)
	assert.Equal(t, []string{"proj-1"}, got.Hidden.IDs())
	assert.Equal(t, []string{"proj-2"}, got.Collapsed.IDs())
	assert.False(t, got.ProjectFilter.All())
	assert.Equal(t, 0, got.ProjectFilter.IDs.Len())
	assert.Equal(t, []string{"prod-2"}, got.ProductFilter.IDs.IDs())
	assert.Equal(t, []string{"gone", "proj-1"}, v.Hidden.IDs())
}

func TestViewNormalized(t *testing.T) {
	v := ViewState{Zoom: -1, Granularity: "hour"}.Normalized()
	assert.Equal(t, 1.0, v.Zoom)
	assert.Equal(t, "week", string(v.Granularity))
}
