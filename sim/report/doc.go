// Package report renders simulation results for people: the plain-text run
// report written after every input and a Mermaid flowchart of the
// configuration tree.
package report
