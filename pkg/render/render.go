// Package render implements optional, non-core conveniences: a JSON
// rendering helper and small diagnostic utilities, all built exclusively on
// dynobj's public operations (Factory's Intern/Lookup, Object's Get/Call).
// Nothing here participates in shape transitions or property resolution.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"dynobj/pkg/dynobj"
)

// ToJSON renders every property o resolves (own, or inherited through its
// prototype chain) into a JSON object, in ascending identifier order. The
// core has no "enumerate this object's own keys" operation, so rendering
// walks every identifier the factory has ever issued and keeps whichever
// ones resolve. Callable properties are skipped; they have no JSON
// representation.
func ToJSON(f *dynobj.Factory, o *dynobj.Object) (string, error) {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i := 0; i < f.InternedCount(); i++ {
		id := dynobj.Identifier(i)
		v, err := o.Get(id)
		if err != nil {
			continue
		}
		if v.IsCallable() {
			continue
		}

		name, _ := f.Lookup(id)
		key, err := json.Marshal(name)
		if err != nil {
			return "", fmt.Errorf("render: marshaling key %q: %w", name, err)
		}
		val, err := json.Marshal(v.Any())
		if err != nil {
			return "", fmt.Errorf("render: marshaling property %q: %w", name, err)
		}

		if !first {
			b.WriteByte(',')
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
		first = false
	}
	b.WriteByte('}')
	return b.String(), nil
}

// FindIdentifiers returns every identifier interned on f so far whose name
// matches pattern, in ascending identifier order. A debug/introspection
// convenience, never consulted by Set, Get, or Call.
func FindIdentifiers(f *dynobj.Factory, pattern string) ([]dynobj.Identifier, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("render: compiling pattern %q: %w", pattern, err)
	}

	var matches []dynobj.Identifier
	for i := 0; i < f.InternedCount(); i++ {
		id := dynobj.Identifier(i)
		name, ok := f.Lookup(id)
		if !ok {
			continue
		}
		matched, err := re.MatchString(name)
		if err != nil {
			return nil, fmt.Errorf("render: matching %q against %q: %w", name, pattern, err)
		}
		if matched {
			matches = append(matches, id)
		}
	}
	return matches, nil
}

// SortedNames returns the names of every property o resolves, ordered with
// locale-aware collation for display purposes. This only orders already
// resolved output; it never normalizes or feeds anything back into the
// interner, which stays strictly byte-exact.
func SortedNames(f *dynobj.Factory, o *dynobj.Object) []string {
	var names []string
	for i := 0; i < f.InternedCount(); i++ {
		id := dynobj.Identifier(i)
		if _, err := o.Get(id); err != nil {
			continue
		}
		name, _ := f.Lookup(id)
		names = append(names, name)
	}
	c := collate.New(language.Und)
	sort.Slice(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
	return names
}
