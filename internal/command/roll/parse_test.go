package roll

import (
	"math/rand"
	"strings"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestEvaluate(t *testing.T) {
	t.Run("plain numbers", func(t *testing.T) {
		res, err := Evaluate("2+3-1", testRNG())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if res.Total != 4 {
			t.Fatalf("want 4, got %d", res.Total)
		}
		if res.DiceMax != 0 || res.Crit || res.Fumble {
			t.Fatalf("no dice rolled, got %+v", res)
		}
	})

	t.Run("multiplication binds tighter", func(t *testing.T) {
		res, err := Evaluate("2+3*4", testRNG())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if res.Total != 14 {
			t.Fatalf("want 14, got %d", res.Total)
		}
	})

	t.Run("integer division", func(t *testing.T) {
		res, err := Evaluate("7/2", testRNG())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if res.Total != 3 {
			t.Fatalf("want 3, got %d", res.Total)
		}
	})

	t.Run("dice bounds", func(t *testing.T) {
		res, err := Evaluate("3d6", testRNG())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if res.Total < 3 || res.Total > 18 {
			t.Fatalf("3d6 out of range: %d", res.Total)
		}
		if res.DiceMax != 6 {
			t.Fatalf("want DiceMax 6, got %d", res.DiceMax)
		}
		if !strings.Contains(res.Pretty, "3d6") {
			t.Fatalf("breakdown missing dice term: %s", res.Pretty)
		}
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		res, err := Evaluate("1d4 + 2", testRNG())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if res.Total < 3 || res.Total > 6 {
			t.Fatalf("1d4+2 out of range: %d", res.Total)
		}
	})

	t.Run("crit and fumble flags", func(t *testing.T) {
		// Enough d2 rolls to hit both faces with any seed.
		res, err := Evaluate("100d2", testRNG())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if !res.Crit || !res.Fumble {
			t.Fatalf("100d2 should produce both 1s and 2s, got %+v", res)
		}
	})

	errCases := []struct {
		name    string
		formula string
	}{
		{"garbage", "abc"},
		{"empty", ""},
		{"division by zero", "4/0"},
		{"too many dice", "101d6"},
		{"too many sides", "1d1001"},
		{"one sided die", "1d1"},
		{"leading operator", "*3"},
	}
	for _, c := range errCases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Evaluate(c.formula, testRNG()); err == nil {
				t.Fatalf("Evaluate(%q) should fail", c.formula)
			}
		})
	}
}
