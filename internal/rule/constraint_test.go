package rule

import (
	"errors"
	"math/big"
	"testing"
)

// ratStrings renders a rational slice for comparison.
func ratStrings(t *testing.T, values []*big.Rat) []string {
	t.Helper()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.RatString()
	}
	return out
}

// assertRats compares generated values against expected rational strings.
func assertRats(t *testing.T, got []*big.Rat, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("got %v, expected %v", ratStrings(t, got), expected)
	}
	for i, want := range expected {
		if got[i].RatString() != want {
			t.Fatalf("got %v, expected %v", ratStrings(t, got), expected)
		}
	}
}

// TestHyperchargeConstraintGenerate tests value generation per kind.
func TestHyperchargeConstraintGenerate(t *testing.T) {
	t.Parallel()

	t.Run("exact", func(t *testing.T) {
		t.Parallel()
		c := HyperchargeConstraint{
			Kind:   KindExact,
			Values: []*big.Rat{big.NewRat(1, 2), big.NewRat(-1, 2)},
		}
		values, err := c.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertRats(t, values, []string{"-1/2", "1/2"})
	})

	t.Run("set deduplicates", func(t *testing.T) {
		t.Parallel()
		c := HyperchargeConstraint{
			Kind:   KindSet,
			Values: []*big.Rat{big.NewRat(1, 1), big.NewRat(2, 2), big.NewRat(0, 1)},
		}
		values, err := c.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertRats(t, values, []string{"0", "1"})
	})

	t.Run("integer sweeps the closed range", func(t *testing.T) {
		t.Parallel()
		c := HyperchargeConstraint{
			Kind: KindInteger,
			Lo:   big.NewRat(-3, 2),
			Hi:   big.NewRat(5, 2),
		}
		values, err := c.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// ceil(-3/2) = -1, floor(5/2) = 2
		assertRats(t, values, []string{"-1", "0", "1", "2"})
	})

	t.Run("rational combines denominators", func(t *testing.T) {
		t.Parallel()
		c := HyperchargeConstraint{
			Kind:         KindRational,
			Lo:           big.NewRat(0, 1),
			Hi:           big.NewRat(1, 1),
			Denominators: []int{2, 3},
		}
		values, err := c.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertRats(t, values, []string{"0", "1/3", "1/2", "2/3", "1"})
	})

	t.Run("range respects the bounds", func(t *testing.T) {
		t.Parallel()
		c := HyperchargeConstraint{
			Kind:         KindRange,
			Lo:           big.NewRat(-1, 2),
			Hi:           big.NewRat(1, 2),
			Denominators: []int{6},
		}
		values, err := c.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertRats(t, values, []string{"-1/2", "-1/3", "-1/6", "0", "1/6", "1/3", "1/2"})
	})

	t.Run("grid with defaults", func(t *testing.T) {
		t.Parallel()
		values, err := HyperchargeConstraint{Kind: KindGrid}.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// k/6 for k in [-6, 6]
		if len(values) != 13 {
			t.Fatalf("got %d values, expected 13", len(values))
		}
		if values[0].Cmp(big.NewRat(-1, 1)) != 0 || values[12].Cmp(big.NewRat(1, 1)) != 0 {
			t.Errorf("got range [%s, %s], expected [-1, 1]", values[0], values[12])
		}
	})

	t.Run("grid with exclusions", func(t *testing.T) {
		t.Parallel()
		c := HyperchargeConstraint{
			Kind:        KindGrid,
			KMax:        2,
			Denominator: 2,
			Exclude:     []*big.Rat{new(big.Rat)},
		}
		values, err := c.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertRats(t, values, []string{"-1", "-1/2", "1/2", "1"})
	})

	t.Run("missing range is malformed", func(t *testing.T) {
		t.Parallel()
		_, err := HyperchargeConstraint{Kind: KindInteger}.Generate()
		if !errors.Is(err, ErrMalformedConstraint) {
			t.Fatalf("got %v, expected ErrMalformedConstraint", err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := HyperchargeConstraint{Kind: "gaussian"}.Generate()
		if !errors.Is(err, ErrUnknownConstraintKind) {
			t.Fatalf("got %v, expected ErrUnknownConstraintKind", err)
		}
	})
}

// TestHyperchargeConstraintAllows tests membership checks.
func TestHyperchargeConstraintAllows(t *testing.T) {
	t.Parallel()

	c := HyperchargeConstraint{
		Kind:   KindSet,
		Values: []*big.Rat{big.NewRat(1, 2), big.NewRat(-1, 2)},
	}

	ok, err := c.Allows(big.NewRat(1, 2))
	if err != nil || !ok {
		t.Errorf("Allows(1/2) = (%t, %v), expected (true, nil)", ok, err)
	}
	ok, err = c.Allows(big.NewRat(1, 3))
	if err != nil || ok {
		t.Errorf("Allows(1/3) = (%t, %v), expected (false, nil)", ok, err)
	}
}

// TestRepConstraint tests dimension and combination checks.
func TestRepConstraint(t *testing.T) {
	t.Parallel()

	c := RepConstraint{
		Allowed: []int{1, 3},
		Forbidden: []ForbiddenCombo{
			{SU3: 3, SU2: 2, Hypercharge: big.NewRat(7, 6)},
		},
	}

	t.Run("allow list", func(t *testing.T) {
		t.Parallel()
		if !c.AllowsDim(3) {
			t.Error("expected 3 allowed")
		}
		if c.AllowsDim(8) {
			t.Error("expected 8 rejected")
		}
	})

	t.Run("empty allow list permits everything", func(t *testing.T) {
		t.Parallel()
		if !(RepConstraint{}).AllowsDim(8) {
			t.Error("expected unrestricted constraint to allow 8")
		}
	})

	t.Run("forbidden combinations", func(t *testing.T) {
		t.Parallel()
		if c.AllowsCombo(3, 2) {
			t.Error("expected (3, 2) forbidden")
		}
		if !c.AllowsCombo(3, 1) {
			t.Error("expected (3, 1) allowed")
		}
	})
}

// TestParseFraction tests the accepted YAML fraction forms.
func TestParseFraction(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    any
		expected string
		wantErr  bool
	}{
		{"fraction string", "1/6", "1/6", false},
		{"negative string", "-2/3", "-2/3", false},
		{"integer string", "2", "2", false},
		{"go int", 3, "3", false},
		{"go int64", int64(-1), "-1", false},
		{"float rejected", 0.5, "", true},
		{"nil rejected", nil, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFraction(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("got %s, expected error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.RatString() != tc.expected {
				t.Errorf("got %s, expected %s", got, tc.expected)
			}
		})
	}
}
