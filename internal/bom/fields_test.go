package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStockNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		rule     StockNumberRule
	}{
		{
			name:     "leading_nine_digit_line",
			input:    "002643796\nC_19207 ~ 11655778-5",
			expected: "002643796",
			rule:     StockNumberLeadingLine,
		},
		{
			name:     "standalone_nine_digit_token",
			input:    "NIIN 011234567 REV A",
			expected: "011234567",
			rule:     StockNumberStandalone,
		},
		{
			name:     "hyphenated_nsn_reduced_to_last_nine",
			input:    "6545-00-922-1200",
			expected: "009221200",
			rule:     StockNumberHyphenated,
		},
		{
			name:     "hyphenated_nsn_embedded_in_text",
			input:    "NSN: 1005-01-231-0973 CAGE 19200",
			expected: "012310973",
			rule:     StockNumberHyphenated,
		},
		{
			name:     "no_numbers",
			input:    "no numbers here",
			expected: "",
			rule:     StockNumberNone,
		},
		{
			name:     "empty_input",
			input:    "",
			expected: "",
			rule:     StockNumberNone,
		},
		{
			name:     "whitespace_only",
			input:    "   \n  ",
			expected: "",
			rule:     StockNumberNone,
		},
		{
			name:     "ten_digit_run_does_not_match",
			input:    "0123456789",
			expected: "",
			rule:     StockNumberNone,
		},
		{
			name:     "leading_rule_wins_over_standalone",
			input:    "part 011111111\n022222222 rest",
			expected: "022222222",
			rule:     StockNumberLeadingLine,
		},
		{
			name:     "wrong_segment_widths_do_not_match",
			input:    "123-45-678-9012",
			expected: "",
			rule:     StockNumberNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := ExtractStockNumber(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestExtractStockNumberIsIdempotent(t *testing.T) {
	inputs := []string{
		"002643796\nC_19207 ~ 11655778-5",
		"6545-00-922-1200",
		"no numbers here",
	}
	for _, input := range inputs {
		first, _ := ExtractStockNumber(input)
		second, _ := ExtractStockNumber(first)
		assert.Equal(t, first, second, "re-extracting %q must not change the value", input)
	}
}

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		parsed   bool
	}{
		{name: "digits_with_unit", input: "  12 EA", expected: 12, parsed: true},
		{name: "plain_digits", input: "3", expected: 3, parsed: true},
		{name: "first_run_wins", input: "2 of 10", expected: 2, parsed: true},
		{name: "empty_defaults_to_one", input: "", expected: 1, parsed: false},
		{name: "whitespace_defaults_to_one", input: "   ", expected: 1, parsed: false},
		{name: "no_digits_defaults_to_one", input: "N/A", expected: 1, parsed: false},
		{name: "zero_defaults_to_one", input: "0", expected: 1, parsed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := ExtractQuantity(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.parsed, parsed)
		})
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "first_meaningful_line",
			input:    "VALVE ASSEMBLY\n5330-00-123-4567",
			expected: "VALVE ASSEMBLY",
		},
		{
			name:     "skips_short_lines",
			input:    "B\nPUMP, HYDRAULIC",
			expected: "PUMP, HYDRAULIC",
		},
		{
			name:     "collapses_whitespace",
			input:    "HOSE   ASSEMBLY,  RUBBER",
			expected: "HOSE ASSEMBLY, RUBBER",
		},
		{
			name:     "strips_trailing_slashes",
			input:    "ADAPTER, STRAIGHT //",
			expected: "ADAPTER, STRAIGHT",
		},
		{
			name:     "empty_input",
			input:    "",
			expected: "",
		},
		{
			name:     "all_lines_too_short",
			input:    "A\nB\nC",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDescription(tt.input))
		})
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "second_line_preferred",
			input:    "11655778-5\nGRIP ASSEMBLY",
			expected: "GRIP ASSEMBLY",
		},
		{
			name:     "single_line_used_as_is",
			input:    "TOOL KIT, GENERAL",
			expected: "TOOL KIT, GENERAL",
		},
		{
			name:     "truncates_at_parenthesis",
			input:    "PN-1\nGRIP ASSEMBLY (ITEM 4) EA",
			expected: "GRIP ASSEMBLY",
		},
		{
			name:     "strips_trailing_code",
			input:    "HOSE ASSY WTY",
			expected: "HOSE ASSY",
		},
		{
			name:     "strips_trailing_code_case_insensitive",
			input:    "PN-2\nCABLE REEL ea",
			expected: "CABLE REEL",
		},
		{
			name:     "keeps_code_in_the_middle",
			input:    "EA CABLE REEL",
			expected: "EA CABLE REEL",
		},
		{
			name:     "blank_lines_ignored",
			input:    "\n\n9G1234\nANTENNA GROUP\n",
			expected: "ANTENNA GROUP",
		},
		{
			name:     "empty_input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanDescription(tt.input))
		})
	}
}

func TestCategoryFilters(t *testing.T) {
	t.Run("standard_path_matches_on_contains", func(t *testing.T) {
		assert.True(t, isCategoryHeader("COMPONENT OF END ITEM"))
		assert.True(t, isCategoryHeader("component of end item listing"))
		assert.True(t, isCategoryHeader("BII- ITEMS"))
		assert.False(t, isCategoryHeader("GRIP ASSEMBLY"))
	})

	t.Run("property_record_path_matches_on_equals", func(t *testing.T) {
		assert.True(t, isCategoryLabel("COEI"))
		assert.True(t, isCategoryLabel("  basic issue items  "))
		assert.False(t, isCategoryLabel("COEI-EXTRA"))
		assert.False(t, isCategoryLabel("GRIP ASSEMBLY"))
	})
}
