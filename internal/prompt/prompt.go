// Package prompt implements the interactive read-validate-retry input loops.
// A Prompter is a plain synchronous reader over any io.Reader, so tests can
// drive it from a string.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skylane/loadplan/internal/model"
)

// Prompter reads validated values from an input stream, re-prompting locally
// on invalid input. Invalid input never propagates to the caller.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// String prompts until a non-empty line is entered.
func (p *Prompter) String(msg string) (string, error) {
	for {
		s, err := p.readLine(msg)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), nil
		}
	}
}

// StringDefault prompts once; an empty line yields the default.
func (p *Prompter) StringDefault(msg, def string) (string, error) {
	s, err := p.readLine(msg)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Float prompts until a parseable number is entered.
func (p *Prompter) Float(msg string) (float64, error) {
	for {
		s, err := p.readLine(msg)
		if err != nil {
			return 0, err
		}
		v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, "Enter a number.")
	}
}

// FloatMin prompts until a number >= min is entered.
func (p *Prompter) FloatMin(msg string, min float64) (float64, error) {
	for {
		v, err := p.Float(msg)
		if err != nil {
			return 0, err
		}
		if v >= min {
			return v, nil
		}
		fmt.Fprintf(p.out, "Enter a number >= %g.\n", min)
	}
}

// Int prompts until a parseable integer is entered.
func (p *Prompter) Int(msg string) (int, error) {
	for {
		s, err := p.readLine(msg)
		if err != nil {
			return 0, err
		}
		v, perr := strconv.Atoi(strings.TrimSpace(s))
		if perr == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, "Enter a whole number.")
	}
}

// IntMin prompts until an integer >= min is entered.
func (p *Prompter) IntMin(msg string, min int) (int, error) {
	for {
		v, err := p.Int(msg)
		if err != nil {
			return 0, err
		}
		if v >= min {
			return v, nil
		}
		fmt.Fprintf(p.out, "Enter a whole number >= %d.\n", min)
	}
}

// YesNo reads a y/yes token case-insensitively; anything else is no.
func (p *Prompter) YesNo(msg string) (bool, error) {
	s, err := p.readLine(msg)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Container interactively collects one container: non-empty ID, non-negative
// weight, deck restriction token, and nose/tail permission.
func (p *Prompter) Container(ordinal int) (model.Container, error) {
	id, err := p.String(fmt.Sprintf("ULD #%d ID: ", ordinal))
	if err != nil {
		return model.Container{}, err
	}
	weight, err := p.FloatMin(fmt.Sprintf("ULD %s weight (kg): ", id), 0)
	if err != nil {
		return model.Container{}, err
	}
	deck, err := p.readLine("ULD type (MAIN / LOWER / ANY): ")
	if err != nil {
		return model.Container{}, err
	}
	special, err := p.YesNo("Allow nose/tail? (y/n): ")
	if err != nil {
		return model.Container{}, err
	}
	return model.Container{
		ID:           id,
		Weight:       weight,
		Restriction:  model.ParseDeckRestriction(deck),
		AllowSpecial: special,
	}, nil
}

// Containers collects n containers in order.
func (p *Prompter) Containers(n int) ([]model.Container, error) {
	out := make([]model.Container, 0, n)
	for i := 0; i < n; i++ {
		c, err := p.Container(i + 1)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
