package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		backed   bool
		warnings []string
	}{
		{
			name:  "clean pure pipeline",
			query: "collect | where odd true | sortBy color | names",
		},
		{
			name:   "clean backed pipeline",
			query:  "collect | onlyValues 10 20 | sortDescByValue | values",
			backed: true,
		},
		{
			name:     "byValue on pure enum",
			query:    "byValue 1",
			warnings: []string{"stage 1: byValue on a pure enum always fails"},
		},
		{
			name:     "value key on pure enum",
			query:    "byKey value 1",
			warnings: []string{`stage 1: key "value" on a pure enum always fails`},
		},
		{
			name:  "value ops on pure enum",
			query: "collect | onlyValues 1 | sortByValue | where value 1 | values",
			warnings: []string{
				"stage 2: value filter on a pure enum always yields no cases",
				"stage 3: value sort on a pure enum always yields no cases",
				`stage 4: key "value" on a pure enum always fails`,
				"stage 5: values on a pure enum is always empty",
			},
		},
		{
			name:     "get after collection",
			query:    "collect | get color",
			backed:   true,
			warnings: []string{"stage 2: single-case terminal after a stage that may select several cases"},
		},
		{
			name:     "is after op",
			query:    "byName one | only one | is one",
			warnings: []string{"stage 3: single-case terminal after a stage that may select several cases"},
		},
		{
			name:  "get after single source",
			query: "tryByName one | get color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(MustParse(tt.query), tt.backed)
			if len(tt.warnings) == 0 {
				assert.True(t, res.OK(), "unexpected warnings: %v", res.Warnings)
				return
			}
			assert.Equal(t, tt.warnings, res.Warnings)
		})
	}
}

func TestValidate_MissingSource(t *testing.T) {
	res := Validate(&Pipeline{Terminal: Count{}}, false)
	assert.Equal(t, []string{"stage 1: missing source"}, res.Warnings)
}
