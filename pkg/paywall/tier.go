package paywall

import (
	"fmt"
	"strings"
)

// Tier is a subscription level. Tiers form a closed, totally ordered set.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// tierLevels is the single source of truth for tier ordering.
var tierLevels = map[Tier]int{
	TierFree:    0,
	TierPremium: 1,
	TierPro:     2,
}

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierFree, TierPremium, TierPro}
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	_, ok := tierLevels[t]
	return ok
}

// Level returns the position of t in the tier order.
// Panics for undefined tiers: tiers are a closed set and an unknown
// value is a programming error.
func (t Tier) Level() int {
	lvl, ok := tierLevels[t]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrInvalidTier, string(t)))
	}
	return lvl
}

// IsPaid reports whether t sits above the free tier.
func (t Tier) IsPaid() bool {
	return t.Valid() && t.Level() > tierLevels[TierFree]
}

// Includes reports whether a subscriber at tier t is sufficient for content requiring r.
func (t Tier) Includes(r Tier) bool {
	return t.Level() >= r.Level()
}

func (t Tier) String() string {
	return string(t)
}

// Compare returns -1, 0 or +1 depending on whether a is below, equal to or above b.
func Compare(a, b Tier) int {
	la, lb := a.Level(), b.Level()
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	default:
		return 0
	}
}

// ParseTier converts a string into a Tier. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
	return t, nil
}

// MustParseTier is like ParseTier but panics on unknown tiers.
func MustParseTier(s string) Tier {
	t, err := ParseTier(s)
	if err != nil {
		panic(err)
	}
	return t
}

// lowestPaidTier returns the cheapest tier that is not free.
func lowestPaidTier() Tier {
	for _, t := range Tiers() {
		if t.IsPaid() {
			return t
		}
	}
	return TierFree
}
