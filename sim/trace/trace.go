package trace

// TraceLevel controls the verbosity of exploration tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelLevels captures one record per expanded generation.
	TraceLevelLevels TraceLevel = "levels"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelLevels: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level != "" && c.Level != TraceLevelNone
}

// SimulationTrace collects level records during one simulation.
type SimulationTrace struct {
	Config TraceConfig
	Levels []LevelRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Levels: make([]LevelRecord, 0),
	}
}

// RecordLevel appends a level record.
func (st *SimulationTrace) RecordLevel(record LevelRecord) {
	st.Levels = append(st.Levels, record)
}
