package money

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Indonesian shorthand amounts, tried in priority order. Suffix forms must
// win over the bare digits they contain, so "70k" parses as 70000, never 70.
// The \b keeps a magnitude suffix from swallowing the first letter of the
// next word, so "50000 kemarin" is a bare 50000 and not 50 million.
var amountPatterns = []struct {
	re      *regexp.Regexp
	mult    float64
	grouped bool
}{
	{re: regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:juta|jt)\b`), mult: 1_000_000},
	{re: regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:ribu|rb|k)\b`), mult: 1_000},
	{re: regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})+)`), mult: 1, grouped: true},
	{re: regexp.MustCompile(`(\d+)`), mult: 1},
}

var (
	amountTokenPattern  = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)*\s*(?:juta|jt|ribu|rb|k)?\b`)
	rupiahMarkerPattern = regexp.MustCompile(`(?i)rp\.?\s*`)
)

// Parse reads the first amount in free text, understanding Indonesian
// shorthand: "70k", "50rb", "50ribu", "1.5jt", "1juta", "150.000", "50000".
// The second return is false when the text carries no amount at all.
func Parse(text string) (float64, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		num := m[1]
		if p.grouped {
			num = strings.NewReplacer(".", "", ",", "").Replace(num)
		} else {
			num = normalizeNumber(num)
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		return v * p.mult, true
	}
	return 0, false
}

// normalizeNumber resolves separator ambiguity in a suffix-form literal:
// repeated separators group thousands, a single one marks a decimal, so
// "2,5" reads as 2.5 while "1.000.000" reads as 1000000.
func normalizeNumber(num string) string {
	switch {
	case strings.Count(num, ".") > 1:
		return strings.ReplaceAll(num, ".", "")
	case strings.Count(num, ",") > 1:
		return strings.ReplaceAll(num, ",", "")
	case strings.ContainsAny(num, ".,"):
		return strings.ReplaceAll(num, ",", ".")
	default:
		return num
	}
}

// StripAmountTokens removes amount literals and "Rp" markers from text,
// leaving the words around them. Used to turn "beli kopi 25rb" into the
// description "beli kopi".
func StripAmountTokens(text string) string {
	out := amountTokenPattern.ReplaceAllString(text, "")
	out = rupiahMarkerPattern.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// FormatRupiah renders an amount with '.' as the thousands separator and no
// decimals, e.g. 1500000 -> "1.500.000". Callers prepend "Rp " where the
// display calls for it.
func FormatRupiah(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) > 3 {
		var b strings.Builder
		head := len(digits) % 3
		if head > 0 {
			b.WriteString(digits[:head])
		}
		for i := head; i < len(digits); i += 3 {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(digits[i : i+3])
		}
		digits = b.String()
	}
	if neg {
		return "-" + digits
	}
	return digits
}
