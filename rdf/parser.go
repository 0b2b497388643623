package rdf

import "strings"

// ParseStats reports what the parser did with its input. Dropped counts
// lines that were neither skippable (blank, comment, directive) nor parseable
// as a full statement; a non-zero value on input this system produced means
// the wrong serialization form was staged.
type ParseStats struct {
	Lines   int `json:"lines"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
	Dropped int `json:"dropped"`
}

// Parser reads the restricted line-oriented statement subset this system's
// serializer produces in its fully-qualified form.
//
// This is deliberately not a general graph-format parser. It recognizes only
// lines whose first two whitespace-separated tokens are bracketed IRIs; the
// compact form's semicolon-continuation lines do not match that shape and are
// dropped (and counted), so validation always stages the fully-qualified form.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse recovers triples from serialized text one line at a time. Blank
// lines, comment lines (#), and directive lines (@) are skipped. Every other
// line must be a complete <subject> <predicate> object statement or it is
// dropped and counted in the returned stats.
func (p *Parser) Parse(content string) ([]Triple, ParseStats) {
	var (
		triples []Triple
		stats   ParseStats
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stats.Lines++

		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "@") {
			stats.Skipped++
			continue
		}

		t, ok := parseStatement(line)
		if !ok {
			stats.Dropped++
			continue
		}
		triples = append(triples, t)
		stats.Parsed++
	}

	return triples, stats
}

// parseStatement parses one <subject> <predicate> object line. The object is
// the joined remainder with the trailing period removed.
func parseStatement(line string) (Triple, bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return Triple{}, false
	}

	subject, ok := stripBrackets(parts[0])
	if !ok {
		return Triple{}, false
	}
	predicate, ok := stripBrackets(parts[1])
	if !ok {
		return Triple{}, false
	}

	object := strings.Join(parts[2:], " ")
	object = strings.TrimSuffix(object, ".")
	object = strings.TrimSpace(object)

	return Triple{Subject: subject, Predicate: predicate, Object: parseObject(object)}, true
}

// parseObject classifies the object term: quoted values are literals with an
// optional ^^<datatype> tag, bracketed values are resource IRIs, anything
// else is taken as a bare IRI.
func parseObject(raw string) Object {
	if strings.HasPrefix(raw, `"`) {
		value := raw[1:]
		datatype := ""
		if end := strings.LastIndex(value, `"`); end >= 0 {
			rest := value[end+1:]
			value = value[:end]
			if tag, ok := strings.CutPrefix(rest, "^^"); ok {
				if iri, bracketed := stripBrackets(tag); bracketed {
					datatype = iri
				} else {
					datatype = tag
				}
			}
		}
		return Object{Value: value, Literal: true, Datatype: datatype}
	}

	if iri, ok := stripBrackets(raw); ok {
		return Object{Value: iri}
	}
	return Object{Value: strings.Trim(raw, `<>"`)}
}

// stripBrackets removes surrounding angle brackets, reporting whether the
// token actually had them.
func stripBrackets(token string) (string, bool) {
	if strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">") {
		return token[1 : len(token)-1], true
	}
	return token, false
}
