package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tracetm/tracetm/sim"
)

const (
	rowName = iota
	rowStates
	rowInputAlphabet
	rowTapeAlphabet
	rowStart
	rowAccept
	rowReject
	headerRows
)

// LoadCSV reads a machine description from a CSV file.
func LoadCSV(path string) (*sim.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading machine file: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads a machine description in the CSV layout.
// Empty cells are ignored, so rows may be padded with trailing commas.
func ParseCSV(r io.Reader) (*sim.Machine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing machine CSV: %w", err)
		}
		rows = append(rows, cells(record))
	}
	if len(rows) < headerRows {
		return nil, fmt.Errorf("%w: expected %d header rows, got %d", sim.ErrInvalidMachine, headerRows, len(rows))
	}

	inputAlphabet, err := symbols(rows[rowInputAlphabet], "input alphabet")
	if err != nil {
		return nil, err
	}
	tapeAlphabet, err := symbols(rows[rowTapeAlphabet], "tape alphabet")
	if err != nil {
		return nil, err
	}

	spec := sim.MachineSpec{
		Name:          first(rows[rowName]),
		States:        rows[rowStates],
		InputAlphabet: inputAlphabet,
		TapeAlphabet:  tapeAlphabet,
		Start:         first(rows[rowStart]),
		Accept:        first(rows[rowAccept]),
		Reject:        first(rows[rowReject]),
	}
	for i, row := range rows[headerRows:] {
		if len(row) == 0 {
			continue
		}
		line := headerRows + i + 1
		if len(row) != 5 {
			return nil, fmt.Errorf("%w: line %d: transition needs 5 fields, got %d", sim.ErrInvalidMachine, line, len(row))
		}
		rule, err := parseRule(row[0], row[1], row[2], row[3], row[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		spec.Rules = append(spec.Rules, rule)
	}
	return sim.NewMachine(spec)
}

func parseRule(state, read, next, write, move string) (sim.Rule, error) {
	r, err := symbol(read)
	if err != nil {
		return sim.Rule{}, err
	}
	w, err := symbol(write)
	if err != nil {
		return sim.Rule{}, err
	}
	d, err := sim.ParseDirection(move)
	if err != nil {
		return sim.Rule{}, err
	}
	return sim.Rule{
		State:      state,
		Read:       r,
		Transition: sim.Transition{Next: next, Write: w, Move: d},
	}, nil
}

// cells trims every field and drops the empty ones.
func cells(record []string) []string {
	out := make([]string, 0, len(record))
	for _, c := range record {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func first(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func symbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: symbol %q must be a single character", sim.ErrInvalidMachine, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func symbols(row []string, what string) ([]rune, error) {
	out := make([]rune, 0, len(row))
	for _, s := range row {
		r, err := symbol(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		out = append(out, r)
	}
	return out, nil
}
