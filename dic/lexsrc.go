package dic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is returned for malformed lexicon source lines.
var ErrSyntax = errors.New("dic: lexicon syntax error")

// ParseLexicon reads a lexicon source and feeds it to a builder.
//
// The source is line oriented. Empty lines and lines starting with '#' are
// ignored. Directives start with '@':
//
//	@description <free text>
//	@matrix <number of left-ids> <number of right-ids>
//	@conn <right-id> <left-id> <cost>
//	@pos <p1>,<p2>,<p3>,<p4>,<p5>,<p6>
//
// All other lines are words with ';'-separated fields:
//
//	surface; left-id; right-id; cost; pos; reading; normalized; dictform; a-split; b-split
//
// The first five fields are required. A '*' denotes an empty or default value;
// splits are lists of surfaces separated by '/'. @matrix must precede any @conn.
func ParseLexicon(r io.Reader, b *Builder) error {
	if r == nil || b == nil {
		return errors.New("dic: no lexicon input present")
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		var err error
		if line[0] == '@' {
			err = parseDirective(line, b)
		} else {
			err = parseWordLine(line, b)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading lexicon: %w", err)
	}
	tracer().Debugf("lexicon source: %d lines, %d words", lineno, b.WordCount())
	return nil
}

func parseDirective(line string, b *Builder) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "@description":
		b.SetDescription(arg)
		return nil
	case "@matrix":
		n, err := parseInts(arg, 2)
		if err != nil {
			return err
		}
		return b.SetMatrixSize(n[0], n[1])
	case "@conn":
		n, err := parseInts(arg, 3)
		if err != nil {
			return err
		}
		if n[2] < -0x8000 || n[2] > 0x7fff {
			return fmt.Errorf("%w: connection cost %d out of range", ErrSyntax, n[2])
		}
		return b.SetConnection(n[0], n[1], int16(n[2]))
	case "@pos":
		_, err := b.AddPOS(splitPOS(arg))
		return err
	}
	return fmt.Errorf("%w: unknown directive %s", ErrSyntax, name)
}

func parseInts(arg string, count int) ([]int, error) {
	fields := strings.Fields(arg)
	if len(fields) != count {
		return nil, fmt.Errorf("%w: expected %d numbers, have %q", ErrSyntax, count, arg)
	}
	n := make([]int, count)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSyntax, err.Error())
		}
		n[i] = v
	}
	return n, nil
}

func parseWordLine(line string, b *Builder) error {
	fields := strings.Split(line, ";")
	if len(fields) < 5 || len(fields) > 10 {
		return fmt.Errorf("%w: word needs 5 to 10 fields, has %d", ErrSyntax, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	for len(fields) < 10 {
		fields = append(fields, "*")
	}
	e := Entry{Surface: fields[0]}
	if e.Surface == "" || e.Surface == "*" {
		return fmt.Errorf("%w: word without surface", ErrSyntax)
	}
	left, err := parseID(fields[1], "left-id")
	if err != nil {
		return err
	}
	right, err := parseID(fields[2], "right-id")
	if err != nil {
		return err
	}
	cost, err := strconv.ParseInt(fields[3], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: cost: %s", ErrSyntax, err.Error())
	}
	e.LeftID, e.RightID, e.Cost = left, right, int16(cost)
	e.POS = splitPOS(fields[4])
	e.Reading = orDefault(fields[5])
	e.Normalized = orDefault(fields[6])
	e.DictionaryForm = orDefault(fields[7])
	e.ASplit = splitSurfaces(fields[8])
	e.BSplit = splitSurfaces(fields[9])
	_, err = b.AddWord(e)
	return err
}

func parseID(s, what string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrSyntax, what, err.Error())
	}
	return uint16(v), nil
}

func splitPOS(s string) []string {
	pos := strings.Split(s, ",")
	for i := range pos {
		pos[i] = strings.TrimSpace(pos[i])
	}
	return pos
}

func splitSurfaces(s string) []string {
	if s = orDefault(s); s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func orDefault(s string) string {
	if s == "*" {
		return ""
	}
	return s
}
