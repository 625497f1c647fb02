package value_objects

import "fmt"

type Priority string

const (
	PriorityUnset    Priority = "unset"
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var validPriorities = map[Priority]bool{
	PriorityUnset:    true,
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

// IsSet reports whether a priority has been assigned. Triage only
// overwrites the priority while it is unset.
func (p Priority) IsSet() bool {
	return p != PriorityUnset && p != ""
}

func NewPriority(s string) (Priority, error) {
	if s == "" {
		return PriorityUnset, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// AllPriorities returns every priority, unset first.
func AllPriorities() []Priority {
	return []Priority{
		PriorityUnset,
		PriorityLow,
		PriorityMedium,
		PriorityHigh,
		PriorityCritical,
	}
}
