//go:build property

package validate

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/opsgate/opsgate/internal/errors"
)

// TestBoundedStringProperties validates the length/character-class contract
// over generated inputs.
func TestBoundedStringProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("accepts exactly strings of the class within bounds", prop.ForAll(
		func(minLen, span, length int) bool {
			maxLen := minLen + span
			v, err := NewBoundedString("a-z", minLen, maxLen)
			if err != nil {
				return false
			}

			input := strings.Repeat("x", length)
			got, err := v.Validate(input)

			if length < minLen || length > maxLen {
				return err != nil
			}
			return err == nil && got == input
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 20),
		gen.IntRange(0, 45),
	))

	properties.Property("any character outside the class fails", prop.ForAll(
		func(prefix string, bad string) bool {
			v, err := NewBoundedString("a-z", 1, 64)
			if err != nil {
				return false
			}
			_, err = v.Validate(prefix + bad)
			return errors.HasCode(err, errors.CodeInvalidCharacters) ||
				errors.HasCode(err, errors.CodeTooLong)
		},
		gen.RegexMatch(`[a-z]{0,40}`),
		gen.RegexMatch(`[A-Z0-9_;|&$]`),
	))

	properties.TestingRun(t)
}

// TestBoundedIntProperties validates that v is accepted iff lo <= v <= hi,
// and that non-integer text always fails.
func TestBoundedIntProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("accepts v iff lo <= v <= hi", prop.ForAll(
		func(lo int64, span int64, v int64) bool {
			hi := lo + span
			validator, err := NewBoundedInt(Bound(lo), Bound(hi))
			if err != nil {
				return false
			}

			got, err := validator.Validate(strconv.FormatInt(v, 10))
			if lo <= v && v <= hi {
				return err == nil && got == v
			}
			return err != nil
		},
		gen.Int64Range(-1000, 1000),
		gen.Int64Range(0, 2000),
		gen.Int64Range(-5000, 5000),
	))

	properties.Property("alphabetic input never validates", prop.ForAll(
		func(text string) bool {
			validator, err := NewBoundedInt(nil, nil)
			if err != nil {
				return false
			}
			_, err = validator.Validate(text + "a")
			return errors.HasCode(err, errors.CodeInvalidInteger)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
