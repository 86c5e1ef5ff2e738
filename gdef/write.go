package gdef

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/vgerr"
)

// BuildDoc resolves a user definitions blob (newline- or ";"-separated
// "name=count[%]" assignments, implicitly rooted at "B/") into a complete
// Doc: it seeds "B" with the all-ones population, then for each definition
// in order samples count bits without replacement from the parent's set
// bits and writes both the child and its "~"-prefixed negation sibling.
func BuildDoc(meta Meta, defsBlob string, width uint, rng *rand.Rand) (*Doc, error) {
	populations := map[string]*popset.Population{baseLabel: popset.AllOnes(width)}
	order := []string{baseLabel}

	for _, def := range splitDefs(defsBlob) {
		name, countSpec, ok := cutOnce(def, assignChar)
		if !ok {
			return nil, errors.Errorf("gdef: invalid assignment %q", def)
		}
		label := baseLabel + scopeSep + name
		parent := parentOf(label)
		leaf := leafOf(label)

		if strings.HasPrefix(leaf, negatePfx) {
			return nil, errors.Wrapf(vgerr.ErrReservedName, "%q: negation labels are auto-generated", label)
		}
		parentPop, ok := populations[parent]
		if !ok {
			return nil, errors.Errorf("gdef: parent %q of %q is not yet defined", parent, label)
		}

		count, err := popset.ResolveCount(countSpec, parentPop.Count())
		if err != nil {
			return nil, errors.Wrapf(err, "definition %q", def)
		}
		childPop, err := popset.SampleWithoutReplacement(parentPop, count, rng)
		if err != nil {
			return nil, errors.Wrapf(err, "definition %q", def)
		}

		populations[label] = childPop
		order = append(order, label)

		negLabel := parent + scopeSep + negatePfx + leaf
		negPop := childPop.Negate(parentPop)
		populations[negLabel] = negPop
		order = append(order, negLabel)
	}

	doc := &Doc{Meta: meta, Pops: make(map[string]string, len(order))}
	for _, label := range order {
		doc.Labels = append(doc.Labels, label)
		doc.Pops[label] = populations[label].String()
	}
	return doc, nil
}

// splitDefs tokenizes a definitions blob on newlines and ";", discarding
// blank tokens.
func splitDefs(blob string) []string {
	blob = strings.ReplaceAll(blob, "\n", ";")
	var out []string
	for _, tok := range strings.Split(blob, ";") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
