package value_objects

import "fmt"

type ActivityType string

const (
	ActivityStatusChange ActivityType = "status_change"
	ActivityComment      ActivityType = "comment"
	ActivityMessage      ActivityType = "message"
	ActivityDecision     ActivityType = "decision"
	ActivityTestResult   ActivityType = "test_result"
	ActivityAssignment   ActivityType = "assignment"
	ActivityResolution   ActivityType = "resolution"
	ActivityFieldChange  ActivityType = "field_change"
	ActivitySystem       ActivityType = "system"
)

var validActivityTypes = map[ActivityType]bool{
	ActivityStatusChange: true,
	ActivityComment:      true,
	ActivityMessage:      true,
	ActivityDecision:     true,
	ActivityTestResult:   true,
	ActivityAssignment:   true,
	ActivityResolution:   true,
	ActivityFieldChange:  true,
	ActivitySystem:       true,
}

func (a ActivityType) String() string {
	return string(a)
}

func (a ActivityType) IsValid() bool {
	return validActivityTypes[a]
}

func NewActivityType(s string) (ActivityType, error) {
	a := ActivityType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return a, nil
}
