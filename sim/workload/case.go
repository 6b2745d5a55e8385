package workload

import "fmt"

// Expectation is the answer a case is expected to produce.
type Expectation string

const (
	ExpectNone   Expectation = ""
	ExpectAccept Expectation = "accept"
	ExpectReject Expectation = "reject"
)

// Case is one input string, optionally with its expected answer.
type Case struct {
	Input  string      `yaml:"input"`
	Expect Expectation `yaml:"expect,omitempty" validate:"omitempty,oneof=accept reject"`
}

// Expected returns a pointer to the expected acceptance, or nil when the case
// carries no expectation.
func (c Case) Expected() *bool {
	switch c.Expect {
	case ExpectAccept:
		v := true
		return &v
	case ExpectReject:
		v := false
		return &v
	}
	return nil
}

// ParseExpectation accepts "accept" and "reject".
func ParseExpectation(s string) (Expectation, error) {
	switch e := Expectation(s); e {
	case ExpectAccept, ExpectReject:
		return e, nil
	}
	return ExpectNone, fmt.Errorf("unknown expectation %q; valid: accept, reject", s)
}
