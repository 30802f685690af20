package bom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected map[Role]int
	}{
		{
			name:   "standard_listing_header",
			header: []string{"LV", "MATERIAL", "MATERIAL DESC", "AUTH QTY", "OH QTY", "UI"},
			expected: map[Role]int{
				RoleLevel:       0,
				RoleMaterial:    1,
				RoleDescription: 2,
				RoleAuthQty:     3,
				RoleOnHandQty:   4,
				RoleUnit:        5,
			},
		},
		{
			name:   "case_insensitive_and_trimmed",
			header: []string{" lv ", "material", " desc "},
			expected: map[Role]int{
				RoleLevel:       0,
				RoleMaterial:    1,
				RoleDescription: 2,
			},
		},
		{
			name:   "wrapped_header_cells_match_joined_phrase",
			header: []string{"LEVEL", "AUTH\nQTY", "OH\nQTY"},
			expected: map[Role]int{
				RoleLevel:     0,
				RoleAuthQty:   1,
				RoleOnHandQty: 2,
			},
		},
		{
			name:   "lv_as_standalone_token",
			header: []string{"ITEM LV", "DESCRIPTION"},
			expected: map[Role]int{
				RoleLevel:       0,
				RoleDescription: 1,
			},
		},
		{
			name:   "later_cell_overwrites_same_role",
			header: []string{"DESC", "MATERIAL DESC"},
			expected: map[Role]int{
				RoleDescription: 1,
			},
		},
		{
			name:   "first_rule_wins_within_one_cell",
			header: []string{"LV DESC"},
			expected: map[Role]int{
				RoleLevel: 0,
			},
		},
		{
			name:   "image_and_unit_variants",
			header: []string{"IMG", "UNIT", "IMAGE REF"},
			expected: map[Role]int{
				RoleImage: 2,
				RoleUnit:  1,
			},
		},
		{
			name:     "empty_header",
			header:   []string{"", "  ", ""},
			expected: map[Role]int{},
		},
		{
			name:     "unrelated_headers_resolve_nothing",
			header:   []string{"FOO", "BAR", "BAZ"},
			expected: map[Role]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := MapColumns(tt.header)
			require.Len(t, cols, len(tt.expected))
			for role, idx := range tt.expected {
				got, ok := cols.Index(role)
				assert.True(t, ok, "role %s should resolve", role)
				assert.Equal(t, idx, got, "role %s", role)
			}
		})
	}
}

func TestRescanHeader(t *testing.T) {
	header := []string{"LV", "PART NO", "ITEM DESCR", "QTY"}

	idx, ok := rescanHeader(header, func(cell string) bool {
		return strings.Contains(cell, "DESCR") || cell == "DESC"
	})
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = rescanHeader([]string{"A", "B"}, func(cell string) bool {
		return cell == "DESC"
	})
	assert.False(t, ok)
}
