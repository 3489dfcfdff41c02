package jest

import (
	"fmt"
	"slices"

	"github.com/luca-patrignani/jest/domain/scoring"
)

type DealMode int

const (
	// DealStandard deals two cards per player every round.
	DealStandard DealMode = iota
	// DealFullHand deals the whole deck once and plays a single long round.
	DealFullHand
)

const (
	VariantStandard = "standard"
	VariantFullHand = "full-hand"
	VariantReverse  = "reverse"
)

// Variant selects the dealing behaviour and the scoring rules of a match.
type Variant interface {
	Name() string
	DealMode() DealMode
	// Visitor returns a fresh visitor; visitors are not shared between games.
	Visitor() scoring.Visitor
}

type variant struct {
	name    string
	mode    DealMode
	visitor func() scoring.Visitor
}

func (v variant) Name() string             { return v.name }
func (v variant) DealMode() DealMode       { return v.mode }
func (v variant) Visitor() scoring.Visitor { return v.visitor() }

func standardVisitor() scoring.Visitor { return scoring.NewStandard() }

var variants = map[string]Variant{
	VariantStandard: variant{name: VariantStandard, mode: DealStandard, visitor: standardVisitor},
	VariantFullHand: variant{name: VariantFullHand, mode: DealFullHand, visitor: standardVisitor},
	VariantReverse: variant{name: VariantReverse, mode: DealStandard, visitor: func() scoring.Visitor {
		return scoring.NewReverse(scoring.NewStandard())
	}},
}

func StandardVariant() Variant { return variants[VariantStandard] }

func VariantByName(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", name)
	}
	return v, nil
}

func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
