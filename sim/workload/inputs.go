package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoadInputs reads an expectation file: one "string, accept|reject" per line.
func LoadInputs(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading inputs file: %w", err)
	}
	defer f.Close()
	return ParseInputs(f)
}

// ParseInputs reads the expectation file layout. Blank lines are skipped. A
// line without a comma is an input string with no expectation. The input may
// be empty (", reject" is the empty string).
func ParseInputs(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		input, expect, found := strings.Cut(text, ",")
		c := Case{Input: strings.TrimSpace(input)}
		if found {
			e, err := ParseExpectation(strings.TrimSpace(expect))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			c.Expect = e
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading inputs: %w", err)
	}
	return cases, nil
}

// ResolveInputs turns positional arguments into cases. A single argument
// naming an existing file is read as an expectation file; otherwise every
// argument is a literal input string.
func ResolveInputs(args []string) ([]Case, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			logrus.Infof("Reading input strings from %s", args[0])
			return LoadInputs(args[0])
		}
	}
	cases := make([]Case, len(args))
	for i, a := range args {
		cases[i] = Case{Input: a}
	}
	return cases, nil
}
