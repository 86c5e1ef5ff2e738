package popset

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/vgerr"
)

// SampleWithoutReplacement draws count bits, uniformly at random and without
// replacement, from the set bits of parent. It mirrors the original GDEF
// writer's rejection-sampling loop (rand() over the available indexes,
// re-rolling on a repeat) but draws from a pre-shuffled index list instead,
// which is equivalent in distribution and always terminates in time linear
// in parent's popcount.
func SampleWithoutReplacement(parent *Population, count int, rng *rand.Rand) (*Population, error) {
	available := parent.SetIndexes()
	if count < 0 || count > len(available) {
		return nil, errors.Wrapf(vgerr.ErrInsufficientPopulation,
			"requested %d samples, parent has only %d", count, len(available))
	}
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	out := New(parent.width)
	for _, idx := range available[:count] {
		out.Set(idx)
	}
	return out, nil
}

// ResolveCount turns a GDEF definition's right-hand side ("2" or "50%") into
// an absolute sample count against the parent's current popcount, matching
// the original writer's floor-division percentage resolution.
func ResolveCount(spec string, parentCount uint) (int, error) {
	if len(spec) == 0 {
		return 0, errors.Wrapf(vgerr.ErrInsufficientPopulation, "empty population count")
	}
	if spec[len(spec)-1] == '%' {
		pct, err := parseNonNegativeInt(spec[:len(spec)-1])
		if err != nil {
			return 0, err
		}
		return int((pct * int(parentCount)) / 100), nil
	}
	return parseNonNegativeInt(spec)
}

func parseNonNegativeInt(s string) (int, error) {
	if len(s) == 0 {
		return 0, errors.Errorf("empty integer")
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errors.Errorf("invalid integer %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
