package model

import (
	"fmt"
	"strings"
	"unicode"
)

// Todo is one row of the todos table.
type Todo struct {
	ID      int64
	Text    string
	Checked bool
}

// String renders the record in the fixed debug notation the list commands print.
func (t Todo) String() string {
	return fmt.Sprintf("Todo { id: %d, todo: %s, checked: %t }", t.ID, debugQuote(t.Text), t.Checked)
}

// debugQuote double-quotes s. Control and other non-graphic runes are
// written as \u{hex}; \t \r \n \0 \" \\ keep their short forms.
func debugQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsGraphic(r) {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(&b, `\u{%x}`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
