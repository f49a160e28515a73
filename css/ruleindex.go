package css

import "sort"

// IndexedRule is one bucket entry: an alternative selector, the
// declarations it shares with its rule's other alternatives, and the
// rule's global insertion order.
type IndexedRule struct {
	Selector     *ComplexSelector
	Declarations []Declaration
	Order        int
}

// RuleIndex organizes rules into specificity-sorted buckets keyed by
// the most discriminating atom of each selector's rightmost compound,
// so the cascade consults only the few buckets relevant to an element
// instead of scanning every rule.
//
// A selector lands in exactly one bucket, chosen by priority
// id > class > tag > universal; ancestor compounds never affect
// placement. After Finalize, every bucket is sorted ascending by
// (specificity, insertion order), which is the cascade order.
type RuleIndex struct {
	byID      map[string][]IndexedRule
	byClass   map[string][]IndexedRule
	byTag     map[string][]IndexedRule
	universal []IndexedRule

	nextOrder int
	finalized bool
}

// NewRuleIndex creates an empty index.
func NewRuleIndex() *RuleIndex {
	return &RuleIndex{
		byID:    make(map[string][]IndexedRule),
		byClass: make(map[string][]IndexedRule),
		byTag:   make(map[string][]IndexedRule),
	}
}

// AddRule places each alternative selector of rule into its bucket.
// All alternatives share the rule's declarations slice and insertion
// order.
func (idx *RuleIndex) AddRule(rule *Rule) {
	order := idx.nextOrder
	idx.nextOrder++
	idx.finalized = false

	for _, sel := range rule.Selectors {
		if len(sel.Last.Parts) == 0 {
			continue
		}
		entry := IndexedRule{Selector: sel, Declarations: rule.Declarations, Order: order}
		if key, ok := bucketKey(sel, IDSelector); ok {
			idx.byID[key] = append(idx.byID[key], entry)
		} else if key, ok := bucketKey(sel, ClassSelector); ok {
			idx.byClass[key] = append(idx.byClass[key], entry)
		} else if key, ok := bucketKey(sel, TagSelector); ok {
			idx.byTag[key] = append(idx.byTag[key], entry)
		} else {
			idx.universal = append(idx.universal, entry)
		}
	}
}

// AddStylesheet adds every rule of sheet in source order.
func (idx *RuleIndex) AddStylesheet(sheet *Stylesheet) {
	for _, rule := range sheet.Rules {
		idx.AddRule(rule)
	}
}

// bucketKey returns the name of the first atom of the given kind in
// the selector's rightmost compound.
func bucketKey(sel *ComplexSelector, kind SimpleKind) (string, bool) {
	for _, p := range sel.Last.Parts {
		if p.Kind == kind {
			return p.Name, true
		}
	}
	return "", false
}

// Finalize sorts every bucket into cascade order: ascending
// specificity, then ascending insertion order, so later entries
// overwrite earlier ones when declarations collide. Idempotent; must
// be called before the lookup methods.
func (idx *RuleIndex) Finalize() {
	if idx.finalized {
		return
	}
	for _, bucket := range idx.byID {
		sortBucket(bucket)
	}
	for _, bucket := range idx.byClass {
		sortBucket(bucket)
	}
	for _, bucket := range idx.byTag {
		sortBucket(bucket)
	}
	sortBucket(idx.universal)
	idx.finalized = true
}

func sortBucket(bucket []IndexedRule) {
	sort.SliceStable(bucket, func(i, j int) bool {
		if c := bucket[i].Selector.Spec.Compare(bucket[j].Selector.Spec); c != 0 {
			return c < 0
		}
		return bucket[i].Order < bucket[j].Order
	})
}

// IDBucket returns the sorted entries keyed by the given id.
func (idx *RuleIndex) IDBucket(id string) []IndexedRule {
	return idx.byID[id]
}

// ClassBucket returns the sorted entries keyed by the given class.
func (idx *RuleIndex) ClassBucket(class string) []IndexedRule {
	return idx.byClass[class]
}

// TagBucket returns the sorted entries keyed by the given tag name.
func (idx *RuleIndex) TagBucket(tag string) []IndexedRule {
	return idx.byTag[tag]
}

// UniversalBucket returns the sorted entries whose rightmost compound
// has no id, class, or tag qualifier.
func (idx *RuleIndex) UniversalBucket() []IndexedRule {
	return idx.universal
}

// Len returns the total number of indexed entries.
func (idx *RuleIndex) Len() int {
	n := len(idx.universal)
	for _, b := range idx.byID {
		n += len(b)
	}
	for _, b := range idx.byClass {
		n += len(b)
	}
	for _, b := range idx.byTag {
		n += len(b)
	}
	return n
}
