// Package loader reads machine descriptions into sim.Machine values.
//
// Two layouts are supported. The CSV layout has seven header rows (name,
// states, input alphabet, tape alphabet, start state, accept state(s), reject
// state(s)) followed by one "state,read,next,write,direction" row per
// transition. The YAML layout carries the same fields by name.
//
// Structural problems are reported wrapped in sim.ErrInvalidMachine.
package loader
