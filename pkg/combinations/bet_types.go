package combinations

import (
	"strings"
)

// BetType describes a named multiple: which subset sizes of the selections are settled as
// individual bets and how many selections the bet needs.
type BetType struct {
	Name    string   `json:"name"`
	Aliases []string `json:"-"`
	Sizes   []int    `json:"sizes"`
	// MinLegs is the smallest leg count the bet accepts; with ExactLegs it is the only one
	MinLegs   int  `json:"min_legs"`
	ExactLegs bool `json:"exact_legs"`
	// DefaultLegs is what a betslip form offers before the bettor changes anything
	DefaultLegs int `json:"default_legs"`
	// FixedLegs is true for full-cover bets whose form does not let the bettor pick the leg count
	FixedLegs bool `json:"fixed_legs"`
}

// Accepts reports whether the bet type can be struck over legCount selections
func (b BetType) Accepts(legCount int) bool {
	if b.ExactLegs {
		return legCount == b.MinLegs
	}
	return legCount >= b.MinLegs
}

func sizeRange(from, to int) []int {
	sizes := make([]int, 0, to-from+1)
	for k := from; k <= to; k++ {
		sizes = append(sizes, k)
	}
	return sizes
}

// betTypes is the static bet type table, in the order forms list them
var betTypes = []BetType{
	{Name: "Single", Aliases: []string{"singles"}, Sizes: []int{1}, MinLegs: 1, DefaultLegs: 1},
	{Name: "Double", Aliases: []string{"doubles"}, Sizes: []int{2}, MinLegs: 2, DefaultLegs: 2},
	{Name: "Treble", Aliases: []string{"trebles"}, Sizes: []int{3}, MinLegs: 3, DefaultLegs: 3},
	{Name: "Fourfold", Aliases: []string{"4-fold", "fourfolds", "accumulator"}, Sizes: []int{4}, MinLegs: 4, DefaultLegs: 4},
	{Name: "Trixie", Sizes: []int{2, 3}, MinLegs: 3, DefaultLegs: 3, FixedLegs: true},
	{Name: "Patent", Sizes: []int{1, 2, 3}, MinLegs: 3, DefaultLegs: 3, FixedLegs: true},
	{Name: "Yankee", Sizes: []int{2, 3, 4}, MinLegs: 4, DefaultLegs: 4, FixedLegs: true},
	{Name: "Lucky 15", Aliases: []string{"lucky15"}, Sizes: []int{1, 2, 3, 4}, MinLegs: 4, DefaultLegs: 4, FixedLegs: true},
	{Name: "Canadian", Aliases: []string{"super yankee"}, Sizes: sizeRange(2, 5), MinLegs: 5, ExactLegs: true, DefaultLegs: 5, FixedLegs: true},
	{Name: "Heinz", Sizes: sizeRange(2, 6), MinLegs: 6, ExactLegs: true, DefaultLegs: 6, FixedLegs: true},
	{Name: "Super Heinz", Aliases: []string{"superheinz"}, Sizes: sizeRange(2, 7), MinLegs: 7, ExactLegs: true, DefaultLegs: 7, FixedLegs: true},
	{Name: "Goliath", Sizes: sizeRange(2, 8), MinLegs: 8, ExactLegs: true, DefaultLegs: 8, FixedLegs: true},
}

var byName = func() map[string]BetType {
	m := make(map[string]BetType, len(betTypes)*2)
	for _, bt := range betTypes {
		m[normalizeName(bt.Name)] = bt
		for _, alias := range bt.Aliases {
			m[normalizeName(alias)] = bt
		}
	}
	return m
}()

// normalizeName folds case and collapses whitespace so "lucky  15" finds "Lucky 15"
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Lookup finds a bet type by name or alias, ignoring case and spacing
func Lookup(name string) (BetType, bool) {
	bt, ok := byName[normalizeName(name)]
	return bt, ok
}

// All returns every known bet type
func All() []BetType {
	out := make([]BetType, len(betTypes))
	copy(out, betTypes)
	return out
}
