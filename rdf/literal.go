package rdf

import "strings"

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

var literalUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
)

// EscapeLiteral replaces backslash, double quote, newline, carriage return,
// and tab with their two-character escape sequences so the value is safe to
// embed in a serialized statement.
func EscapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// UnescapeLiteral is the inverse of EscapeLiteral.
func UnescapeLiteral(s string) string {
	return literalUnescaper.Replace(s)
}
