package s3dx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Permissive scalar accessors. Exporters of this format omit fields
// and write junk in numeric slots; absence and unparsable text both
// decode to the zero value, never an error.

func childText(e *etree.Element, name string) string {
	c := e.SelectElement(name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

func childFloat(e *etree.Element, name string) float64 {
	return parseFloat(childText(e, name))
}

func childInt(e *etree.Element, name string) int {
	return parseInt(childText(e, name))
}

func parseFloat(s string) float64 {
	// Some exporters write decimal commas.
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		// Integer slots occasionally carry float text.
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return v
}
