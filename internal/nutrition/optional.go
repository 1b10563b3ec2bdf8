package nutrition

import "math"

// Nutrient quantities are stored with two decimal places (grams, milligrams or
// micrograms depending on the field).
const floatPrecision = 2

func round2(v float64) float64 {
	p := math.Pow(10, floatPrecision)
	return math.Round(v*p) / p
}

// Float returns a pointer to v, for building optional nutrient fields inline.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// SumFloat combines two optional nutrient amounts. A nil operand means the
// value is unknown, which is not the same as zero: both nil yields nil, while
// a single known operand is preserved. The result is rounded to two decimals.
//
// SumFloat is commutative and associative (within rounding), so it is safe to
// fold over an ingredient list in any order.
func SumFloat(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	var av, bv float64
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	s := round2(av + bv)
	return &s
}

// SumInt is SumFloat for integer-valued fields (kilocalories, scores). No
// rounding is applied.
func SumInt(a, b *int) *int {
	if a == nil && b == nil {
		return nil
	}
	var av, bv int
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	s := av + bv
	return &s
}

// UnionStrings merges two label sets (allergens, food groups) as a
// deduplicated union. Both empty yields nil. First-seen order is preserved so
// repeated aggregations produce reproducible output.
func UnionStrings(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
