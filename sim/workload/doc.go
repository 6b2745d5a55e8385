// Package workload provides the input strings a machine is run against.
//
// Inputs come from three places: literal strings on the command line, the
// plain-text expectation file ("string, accept|reject" per line), and the
// YAML batch spec which also names the machine and its limits.
package workload
