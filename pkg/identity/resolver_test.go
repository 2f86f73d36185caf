package identity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "plain", arg: "Max Power", want: "max power"},
		{name: "diacritics", arg: "José ÁLVAREZ", want: "jose alvarez"},
		{name: "whitespace", arg: "  Kimi\t Raikkonen  ", want: "kimi raikkonen"},
		{name: "combined", arg: "Sérgio   PÉREZ", want: "sergio perez"},
		{name: "empty", arg: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.arg))
		})
	}
}

func TestResolveDriver(t *testing.T) {
	drivers := []*model.Driver{
		{ID: 1, Name: "José Álvarez"},
		{ID: 2, Name: "Max Power"},
	}
	r := NewResolver(drivers, nil, nil, nil)

	d, ok := r.ResolveDriver("jose ALVAREZ")
	assert.True(t, ok)
	assert.Equal(t, 1, d.ID)

	_, ok = r.ResolveDriver("Unknown Driver")
	assert.False(t, ok)
	assert.Empty(t, r.Duplicates())
}

func TestResolveAmbiguousPicksMostResults(t *testing.T) {
	drivers := []*model.Driver{
		{ID: 1, Name: "Max Power"},
		{ID: 2, Name: "MAX  power"},
	}
	r := NewResolver(drivers, nil, map[int]int{1: 2, 2: 5}, nil)

	d, ok := r.ResolveDriver("Max Power")
	assert.True(t, ok)
	assert.Equal(t, 2, d.ID)

	want := []Duplicate{{Kind: "driver", Key: "max power", IDs: []int{1, 2}, ChosenID: 2}}
	if diff := cmp.Diff(want, r.Duplicates()); diff != "" {
		t.Errorf("duplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAmbiguousTieFallsBackToLowestID(t *testing.T) {
	drivers := []*model.Driver{
		{ID: 7, Name: "Max Power"},
		{ID: 3, Name: "Max Power"},
	}
	r := NewResolver(drivers, nil, map[int]int{3: 4, 7: 4}, nil)

	d, ok := r.ResolveDriver("Max Power")
	assert.True(t, ok)
	assert.Equal(t, 3, d.ID)
}

func TestResolveTeam(t *testing.T) {
	teams := []*model.Team{
		{ID: 10, Name: "Scudería Rápida"},
		{ID: 11, Name: "Scuderia Rapida"},
	}
	r := NewResolver(nil, teams, nil, map[int]int{10: 1, 11: 9})

	tm, ok := r.ResolveTeam("scuderia rapida")
	assert.True(t, ok)
	assert.Equal(t, 11, tm.ID)
	assert.Len(t, r.Duplicates(), 1)
	assert.Equal(t, "team", r.Duplicates()[0].Kind)
}
