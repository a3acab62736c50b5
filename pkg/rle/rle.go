// Package rle reads and writes Life patterns in the run length encoded
// format used by most pattern collections.
package rle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"hashlife/pkg/core"
)

// lineWidth is the maximum length of a pattern line produced by Write.
const lineWidth = 80

var (
	// ErrBadToken is returned for characters outside the RLE grammar.
	ErrBadToken = errors.New("rle: unexpected token")
	// ErrUnsupportedRule is returned when the header names a rule other
	// than B3/S23.
	ErrUnsupportedRule = errors.New("rle: unsupported rule")
)

// Parse reads an RLE pattern and returns its live cells. The top-left cell
// of the pattern is (0, 0).
func Parse(r io.Reader) ([]core.Point, error) {
	var (
		points []core.Point
		x, y   int64
		run    int64
		header = true
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<24)
	line := 0
scan:
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if header {
			header = false
			if strings.HasPrefix(text, "x") {
				if err := checkHeader(text); err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				continue
			}
		}
		for _, c := range text {
			switch {
			case c >= '0' && c <= '9':
				run = run*10 + int64(c-'0')
				continue
			case c == ' ' || c == '\t':
				continue
			}
			n := max(run, 1)
			run = 0
			switch c {
			case 'b':
				x += n
			case 'o':
				for i := int64(0); i < n; i++ {
					points = append(points, core.Point{X: x + i, Y: y})
				}
				x += n
			case '$':
				y += n
				x = 0
			case '!':
				break scan
			default:
				return nil, fmt.Errorf("line %d: %w %q", line, ErrBadToken, c)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rle: read: %w", err)
	}
	return points, nil
}

// checkHeader validates a "x = 3, y = 3, rule = B3/S23" line.
func checkHeader(text string) error {
	for _, field := range strings.Split(text, ",") {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) != "rule" {
			continue
		}
		rule := strings.ToUpper(strings.TrimSpace(value))
		if rule != "B3/S23" && rule != "23/3" {
			return fmt.Errorf("%w %q", ErrUnsupportedRule, strings.TrimSpace(value))
		}
	}
	return nil
}

// Encode returns the pattern body for points, terminated by "!\n". Columns
// and rows are relative to the smallest x and y among the points; runs of
// dead and live cells carry a count prefix and rows are separated by '$'.
func Encode(points []core.Point) string {
	if len(points) == 0 {
		return "!\n"
	}
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, core.Point.Compare)
	sorted = slices.Compact(sorted)
	box := core.BoundingBox(sorted)

	var b strings.Builder
	y := box.Min.Y
	// x is the column after the last written token in this row
	x := box.Min.X
	for i := 0; i < len(sorted); {
		p := sorted[i]
		for ; y < p.Y; y++ {
			b.WriteByte('$')
			x = box.Min.X
		}
		writeRun(&b, p.X-x, 'b')
		run := int64(1)
		for i+int(run) < len(sorted) && sorted[i+int(run)] == p.Add(core.Point{X: run}) {
			run++
		}
		writeRun(&b, run, 'o')
		x = p.X + run
		i += int(run)
	}
	b.WriteString("!\n")
	return b.String()
}

// writeRun appends a run of n tags, with a count prefix when n > 1.
func writeRun(b *strings.Builder, n int64, tag byte) {
	if n <= 0 {
		return
	}
	if n > 1 {
		b.WriteString(strconv.FormatInt(n, 10))
	}
	b.WriteByte(tag)
}

// Write emits a header line followed by the encoded pattern split into lines
// of at most 80 characters.
func Write(w io.Writer, points []core.Point) error {
	box := core.BoundingBox(points)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "x = %d, y = %d, rule = B3/S23\n", box.Dx(), box.Dy())

	body := strings.TrimSuffix(Encode(points), "\n")
	for len(body) > lineWidth {
		bw.WriteString(body[:lineWidth])
		bw.WriteByte('\n')
		body = body[lineWidth:]
	}
	bw.WriteString(body)
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("rle: write: %w", err)
	}
	return nil
}
