package rdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/docgraph/vocabulary/docgraph"
)

// Format selects the output serialization.
type Format string

const (
	// FormatTurtle produces the compact form: prefix directives, one
	// statement block per subject, predicates separated by semicolons.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces the fully-qualified form: one complete
	// subject-predicate-object statement per line, every term a full
	// bracketed IRI or literal.
	FormatNTriples Format = "ntriples"
)

// Serializer renders triples into textual graph formats. Literal values are
// expected to be pre-escaped by the builder; the serializer only adds
// surrounding syntax.
type Serializer struct {
	prefixes map[string]string
}

// NewSerializer creates a Serializer with the Docgraph prefix table.
func NewSerializer() *Serializer {
	return &Serializer{prefixes: docgraph.Prefixes()}
}

// Serialize renders the triples in the requested format. Triple order is
// preserved; the turtle form additionally groups by first-seen subject.
func (s *Serializer) Serialize(triples []Triple, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return s.toTurtle(triples), nil
	case FormatNTriples:
		return s.toNTriples(triples), nil
	default:
		return "", fmt.Errorf("unsupported RDF format: %s", format)
	}
}

// toTurtle serializes the compact grouped form.
func (s *Serializer) toTurtle(triples []Triple) string {
	var sb strings.Builder

	for _, prefix := range s.sortedPrefixes() {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, s.prefixes[prefix])
	}
	sb.WriteString("\n")

	// Group by subject, preserving first-seen subject order and the
	// supplied triple order within each subject.
	var order []string
	grouped := make(map[string][]Triple)
	for _, t := range triples {
		if _, ok := grouped[t.Subject]; !ok {
			order = append(order, t.Subject)
		}
		grouped[t.Subject] = append(grouped[t.Subject], t)
	}

	for _, subject := range order {
		group := grouped[subject]
		fmt.Fprintf(&sb, "<%s>\n", subject)
		for i, t := range group {
			terminator := " ;"
			if i == len(group)-1 {
				terminator = " ."
			}
			fmt.Fprintf(&sb, "    %s %s%s\n",
				s.abbreviate(t.Predicate), s.turtleObject(t.Object), terminator)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// toNTriples serializes the fully-qualified line-per-statement form.
func (s *Serializer) toNTriples(triples []Triple) string {
	var sb strings.Builder
	for _, t := range triples {
		fmt.Fprintf(&sb, "<%s> <%s> %s .\n",
			t.Subject, t.Predicate, s.ntriplesObject(t.Object))
	}
	return sb.String()
}

// turtleObject formats an object term for the compact form. Literal values
// arriving already quoted pass through unchanged.
func (s *Serializer) turtleObject(o Object) string {
	if o.Literal {
		if strings.HasPrefix(o.Value, `"`) {
			return o.Value
		}
		if o.Datatype != "" {
			return `"` + o.Value + `"^^` + s.abbreviate(o.Datatype)
		}
		return `"` + o.Value + `"`
	}
	return s.abbreviate(o.Value)
}

// ntriplesObject formats an object term with every IRI fully bracketed.
func (s *Serializer) ntriplesObject(o Object) string {
	if o.Literal {
		if strings.HasPrefix(o.Value, `"`) {
			return o.Value
		}
		if o.Datatype != "" {
			return `"` + o.Value + `"^^<` + o.Datatype + `>`
		}
		return `"` + o.Value + `"`
	}
	return "<" + o.Value + ">"
}

// abbreviate shortens an IRI to prefixed form by longest-prefix match.
// IRIs outside every known namespace are emitted fully bracketed.
func (s *Serializer) abbreviate(iri string) string {
	bestPrefix := ""
	bestNS := ""
	for prefix, ns := range s.prefixes {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			bestPrefix = prefix
			bestNS = ns
		}
	}
	if bestNS == "" {
		return "<" + iri + ">"
	}
	return bestPrefix + ":" + iri[len(bestNS):]
}

// sortedPrefixes returns prefix names in stable order so output is
// reproducible.
func (s *Serializer) sortedPrefixes() []string {
	names := make([]string, 0, len(s.prefixes))
	for name := range s.prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
