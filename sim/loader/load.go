package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tracetm/tracetm/sim"
)

// Load reads a machine description, choosing the layout by file extension.
func Load(path string) (*sim.Machine, error) {
	var (
		m   *sim.Machine
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		m, err = LoadCSV(path)
	case ".yaml", ".yml":
		m, err = LoadYAML(path)
	default:
		return nil, fmt.Errorf("unknown machine file extension %q; valid: .csv, .yaml, .yml", ext)
	}
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Loaded machine %q from %s: %d states, %d rules, fanout %d",
		m.Name, path, len(m.States), len(m.Rules()), m.MaxFanout())
	return m, nil
}
