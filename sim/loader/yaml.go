package loader

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tracetm/tracetm/sim"
)

// MachineFile is the YAML layout of a machine description.
type MachineFile struct {
	Name          string           `yaml:"name"`
	States        []string         `yaml:"states"`
	InputAlphabet []string         `yaml:"input_alphabet"`
	TapeAlphabet  []string         `yaml:"tape_alphabet"`
	Start         string           `yaml:"start"`
	Accept        string           `yaml:"accept"`
	Reject        string           `yaml:"reject,omitempty"`
	Transitions   []TransitionSpec `yaml:"transitions"`
}

// TransitionSpec is one row of the transition table.
type TransitionSpec struct {
	State string `yaml:"state"`
	Read  string `yaml:"read"`
	Next  string `yaml:"next"`
	Write string `yaml:"write"`
	Move  string `yaml:"move"`
}

// LoadYAML reads a machine description from a YAML file.
func LoadYAML(path string) (*sim.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading machine file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a machine description with strict field checking:
// unknown keys are errors.
func ParseYAML(data []byte) (*sim.Machine, error) {
	var mf MachineFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&mf); err != nil {
		return nil, fmt.Errorf("parsing machine YAML: %w", err)
	}
	return mf.Machine()
}

// Machine builds the sim.Machine described by mf.
func (mf *MachineFile) Machine() (*sim.Machine, error) {
	inputAlphabet, err := symbols(mf.InputAlphabet, "input alphabet")
	if err != nil {
		return nil, err
	}
	tapeAlphabet, err := symbols(mf.TapeAlphabet, "tape alphabet")
	if err != nil {
		return nil, err
	}
	spec := sim.MachineSpec{
		Name:          mf.Name,
		States:        mf.States,
		InputAlphabet: inputAlphabet,
		TapeAlphabet:  tapeAlphabet,
		Start:         mf.Start,
		Accept:        mf.Accept,
		Reject:        mf.Reject,
	}
	for i, t := range mf.Transitions {
		rule, err := parseRule(t.State, t.Read, t.Next, t.Write, t.Move)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		spec.Rules = append(spec.Rules, rule)
	}
	return sim.NewMachine(spec)
}
