package table

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SecondColumn is the index the sort engine orders by.
const SecondColumn = 1

// SortDescendingBySecondColumn reorders the table's current rows in place,
// largest first. The order holds only until the next render.
func SortDescendingBySecondColumn(t *Table) {
	if t == nil {
		return
	}
	c := newComparator()
	t.Reorder(func(rows []Row) {
		slices.SortStableFunc(rows, func(a, b Row) int {
			return c.compare(a.Cell(SecondColumn), b.Cell(SecondColumn))
		})
	})
}

// Compare orders two cell texts for a descending sort:
//
//  1. both numeric: larger number first
//  2. only a numeric: a first
//  3. only b numeric: b first
//  4. neither: descending locale collation of the raw text
func Compare(a, b string) int {
	return newComparator().compare(a, b)
}

type comparator struct {
	coll *collate.Collator
}

func newComparator() comparator {
	return comparator{coll: collate.New(language.Und)}
}

func (c comparator) compare(a, b string) int {
	na, aNum := ParseNumber(a)
	nb, bNum := ParseNumber(b)

	switch {
	case aNum && bNum:
		return cmp.Compare(nb, na)
	case aNum && !bNum:
		return -1
	case !aNum && bNum:
		return 1
	default:
		return c.coll.CompareString(b, a)
	}
}

// ParseNumber reads the longest numeric prefix of s after leading whitespace,
// the way a browser's parseFloat does: "3.1 km" is 3.1, "—" and "" are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range still yields ±Inf or 0, which is what parseFloat returns.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
