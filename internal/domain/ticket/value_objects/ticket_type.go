package value_objects

import "fmt"

type TicketType string

const (
	TypeBug         TicketType = "bug"
	TypeFeature     TicketType = "feature"
	TypeSuggestion  TicketType = "suggestion"
	TypeTask        TicketType = "task"
	TypeEnhancement TicketType = "enhancement"
)

var validTicketTypes = map[TicketType]bool{
	TypeBug:         true,
	TypeFeature:     true,
	TypeSuggestion:  true,
	TypeTask:        true,
	TypeEnhancement: true,
}

func (t TicketType) String() string {
	return string(t)
}

func (t TicketType) IsValid() bool {
	return validTicketTypes[t]
}

func NewTicketType(s string) (TicketType, error) {
	t := TicketType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return t, nil
}

// AllTicketTypes returns every ticket type.
func AllTicketTypes() []TicketType {
	return []TicketType{
		TypeBug,
		TypeFeature,
		TypeSuggestion,
		TypeTask,
		TypeEnhancement,
	}
}
