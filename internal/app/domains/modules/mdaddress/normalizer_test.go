package mdaddress

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestUnitNormalizer_Normalize(t *testing.T) {
	n := NewUnitNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", "   "},
		{"2Unit5", "Unit 5"},
		{"12 unit", "Unit 12"},
		{"Apt 3", "Unit 3"},
		{"Suite 400B", "Unit 400"},
		{"Basement", "Unit"},
		{"Unit 7", "Unit 7"},
		{"unit", "Unit"},
		{"Rear Unit 9", "rearUnit 9"},
		{"Unit 4 Back Door", "Unit 4backdoor"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestUnitNormalizer_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	n := NewUnitNormalizer()

	properties.Property("result never contains whitespace beyond the Unit label", prop.ForAll(
		func(words []string) bool {
			input := strings.Join(words, " ")
			if strings.TrimSpace(input) == "" {
				return n.Normalize(input) == input
			}
			out := strings.Replace(n.Normalize(input), "Unit ", "Unit", 1)
			return !strings.ContainsAny(out, " \t\n")
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("digits-only input becomes Unit N", prop.ForAll(
		func(num int) bool {
			s := strconv.Itoa(num)
			return n.Normalize(" "+s+" ") == "Unit "+s
		},
		gen.IntRange(0, 99999),
	))

	properties.Property("normalization is idempotent for Unit N", prop.ForAll(
		func(num int) bool {
			first := n.Normalize("unit " + strconv.Itoa(num))
			return n.Normalize(first) == first
		},
		gen.IntRange(0, 99999),
	))

	properties.TestingRun(t)
}
