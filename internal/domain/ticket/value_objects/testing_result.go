package value_objects

import "fmt"

type TestingResult string

const (
	// TestingNone means no fix has been submitted for testing yet.
	TestingNone    TestingResult = ""
	TestingPending TestingResult = "pending"
	TestingPass    TestingResult = "pass"
	TestingFail    TestingResult = "fail"
	TestingPartial TestingResult = "partial"
)

var validTestingResults = map[TestingResult]bool{
	TestingNone:    true,
	TestingPending: true,
	TestingPass:    true,
	TestingFail:    true,
	TestingPartial: true,
}

func (r TestingResult) String() string {
	return string(r)
}

func (r TestingResult) IsValid() bool {
	return validTestingResults[r]
}

// NeedsRework reports whether the result sends the ticket back to
// implementation.
func (r TestingResult) NeedsRework() bool {
	return r == TestingFail || r == TestingPartial
}

func NewTestingResult(s string) (TestingResult, error) {
	r := TestingResult(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid testing result: %s", s)
	}
	return r, nil
}
