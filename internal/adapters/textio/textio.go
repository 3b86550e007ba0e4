// Package textio reads orders and charges from line-oriented text and
// writes solution sets back out.
//
// Each item is one line of the form "label: dollars.cents", e.g.
//
//	groceries: 10.99
//	2024-03-01: 2.45
//
// The label is everything before the last ": " that is followed by the
// amount, so labels may themselves contain colons. Amounts have exactly two
// fractional digits. A section of items ends at a blank line or at EOF.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/domain/money"
)

// ErrInvalidLine is returned for lines that are not "label: D.CC"
var ErrInvalidLine = errors.New("invalid item")

var itemPattern = regexp.MustCompile(`^\s*(.*): (\d+)\.(\d\d)\s*$`)

// ParseOrder parses one order line
func ParseOrder(line string) (matcher.Order, error) {
	label, value, err := parseItem(line)
	if err != nil {
		return matcher.Order{}, err
	}
	return matcher.Order{Label: label, Value: value}, nil
}

// ParseCharge parses one charge line
func ParseCharge(line string) (matcher.Charge, error) {
	label, value, err := parseItem(line)
	if err != nil {
		return matcher.Charge{}, err
	}
	return matcher.Charge{Label: label, Value: value}, nil
}

func parseItem(line string) (string, money.Cents, error) {
	m := itemPattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0, fmt.Errorf("%w %s", ErrInvalidLine, line)
	}

	value, err := money.Parse(m[2] + "." + m[3])
	if err != nil {
		return "", 0, fmt.Errorf("%w %s: %w", ErrInvalidLine, line, err)
	}
	return m[1], value, nil
}

// ReadSection returns the lines up to the next blank line or EOF. The blank
// line itself is consumed.
func ReadSection(sc *bufio.Scanner) ([]string, error) {
	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// ReadOrders reads and parses one section of order lines
func ReadOrders(sc *bufio.Scanner) ([]matcher.Order, error) {
	return readItems(sc, ParseOrder)
}

// ReadCharges reads and parses one section of charge lines
func ReadCharges(sc *bufio.Scanner) ([]matcher.Charge, error) {
	return readItems(sc, ParseCharge)
}

func readItems[T any](sc *bufio.Scanner, parse func(string) (T, error)) ([]T, error) {
	lines, err := ReadSection(sc)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(lines))
	for i, line := range lines {
		item, err := parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// FormatItem renders a labelled amount as "label: D.CC"
func FormatItem(label string, value money.Cents) string {
	return label + ": " + value.String()
}

// WriteSolutions prints each solution as a numbered block: every order
// line is followed by its charges as "- " lines. An empty set prints
// "No exact solutions!".
func WriteSolutions(w io.Writer, set matcher.SolutionSet) error {
	bw := bufio.NewWriter(w)

	for n, solution := range set {
		fmt.Fprintf(bw, "Solution %d:\n", n)
		for _, a := range solution {
			fmt.Fprintln(bw, FormatItem(a.Order.Label, a.Order.Value))
			for _, ch := range a.Charges {
				fmt.Fprintln(bw, "- "+FormatItem(ch.Label, ch.Value))
			}
		}
		fmt.Fprintln(bw)
	}

	if len(set) == 0 {
		fmt.Fprintln(bw, "No exact solutions!")
	}

	return bw.Flush()
}
