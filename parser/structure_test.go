package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStructure(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []StructureIssue
	}{
		{
			name: "complete",
			data: `{"brackets": [], "autoClosingPairs": [], "surroundingPairs": [], "wordPattern": "\\w+"}`,
		},
		{
			name: "wordPattern may be an object",
			data: `{"brackets": [], "autoClosingPairs": [], "surroundingPairs": [], "wordPattern": {"pattern": "x"}}`,
		},
		{
			name: "empty",
			data: `{}`,
			want: []StructureIssue{
				{Key: "brackets", Expected: KindArray},
				{Key: "autoClosingPairs", Expected: KindArray},
				{Key: "surroundingPairs", Expected: KindArray},
				{Key: "wordPattern"},
			},
		},
		{
			name: "wrong kind",
			data: `{"brackets": "()", "autoClosingPairs": [], "surroundingPairs": [], "wordPattern": null}`,
			want: []StructureIssue{
				{Key: "brackets", Expected: KindArray, Found: KindString},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, CheckStructure(doc))
		})
	}
}

func TestStructureIssue_String(t *testing.T) {
	assert.Equal(t, "cannot find 'brackets' or it is not an array",
		StructureIssue{Key: "brackets", Expected: KindArray}.String())
	assert.Equal(t, "cannot find 'wordPattern'",
		StructureIssue{Key: "wordPattern"}.String())
	assert.Equal(t, "'brackets' is string, expected array",
		StructureIssue{Key: "brackets", Expected: KindArray, Found: KindString}.String())
}
