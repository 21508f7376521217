package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zalepa/crimestats/chart"
)

const terminalBarWidth = 50

// Terminal writes c as a text bar chart. Bars with negative values grow to
// the left of the axis, positive ones to the right.
func Terminal(w io.Writer, c chart.BarChart) {
	fmt.Fprintln(w, c.Title)
	fmt.Fprintln(w)
	if len(c.Bars) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}

	maxName, maxAbs, hasNeg := 0, 0.0, false
	for _, b := range c.Bars {
		if n := utf8.RuneCountInString(b.Category); n > maxName {
			maxName = n
		}
		maxAbs = math.Max(maxAbs, math.Abs(b.Value))
		if b.Value < 0 {
			hasNeg = true
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	negWidth, posWidth := 0, terminalBarWidth
	if hasNeg {
		negWidth, posWidth = terminalBarWidth/2, terminalBarWidth/2
	}

	for _, b := range c.Bars {
		name := b.Category + strings.Repeat(" ", maxName-utf8.RuneCountInString(b.Category))
		var neg, pos string
		if b.Value < 0 {
			n := barCells(-b.Value, maxAbs, negWidth)
			neg = strings.Repeat("░", n)
		} else {
			pos = strings.Repeat("█", barCells(b.Value, maxAbs, posWidth))
		}
		left := strings.Repeat(" ", negWidth-utf8.RuneCountInString(neg)) + neg
		fmt.Fprintf(w, "%s %s│%s %s\n", name, left, pos, b.Label)
	}
}

func barCells(v, maxAbs float64, width int) int {
	n := int(math.Round(v / maxAbs * float64(width)))
	if n == 0 && v > 0 {
		n = 1
	}
	return n
}

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + addCommas(s[1:])
	}
	return addCommas(s)
}

func addCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var sb strings.Builder
	pre := n % 3
	if pre > 0 {
		sb.WriteString(s[:pre])
		if pre < n {
			sb.WriteByte(',')
		}
	}
	for i := pre; i < n; i += 3 {
		sb.WriteString(s[i : i+3])
		if i+3 < n {
			sb.WriteByte(',')
		}
	}
	return sb.String()
}
