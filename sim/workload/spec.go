package workload

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tracetm/tracetm/sim"
)

// legacyExpectations maps expectation spellings accepted for older specs.
var legacyExpectations = map[Expectation]Expectation{
	"accepted": ExpectAccept,
	"rejected": ExpectReject,
}

// UpgradeLegacy normalizes a spec in-place: an empty version becomes "1" and
// legacy expectation spellings (accepted/rejected) are mapped to the current
// ones. Idempotent. Emits logrus.Warn deprecation notices for mapped values.
func UpgradeLegacy(spec *BatchSpec) {
	if spec.Version == "" {
		spec.Version = "1"
	}
	for i := range spec.Cases {
		if e, ok := legacyExpectations[spec.Cases[i].Expect]; ok {
			logrus.Warnf("deprecated expectation %q auto-mapped to %q; update your spec",
				spec.Cases[i].Expect, e)
			spec.Cases[i].Expect = e
		}
	}
}

// BatchSpec is the top-level batch configuration.
// Loaded from YAML via LoadBatchSpec(path).
type BatchSpec struct {
	Version string     `yaml:"version" validate:"oneof=1"`
	Machine string     `yaml:"machine" validate:"required"` // relative paths resolve against the spec's directory
	Limits  sim.Limits `yaml:"limits"`
	// HaltOnReject ends a run as soon as any branch enters the reject state.
	HaltOnReject bool   `yaml:"halt_on_reject,omitempty"`
	Cases        []Case `yaml:"cases" validate:"required,min=1,dive"`

	dir string
}

var specValidate = validator.New()

// LoadBatchSpec reads and parses a batch spec with strict field checking.
func LoadBatchSpec(path string) (*BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch spec: %w", err)
	}
	var spec BatchSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing batch spec: %w", err)
	}
	UpgradeLegacy(&spec)
	spec.dir = filepath.Dir(path)
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *BatchSpec) Validate() error {
	if err := specValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid batch spec: %w", err)
	}
	return s.Limits.Validate()
}

// MachinePath returns the machine file path, resolved against the directory
// the spec was loaded from.
func (s *BatchSpec) MachinePath() string {
	if filepath.IsAbs(s.Machine) || s.dir == "" {
		return s.Machine
	}
	return filepath.Join(s.dir, s.Machine)
}
