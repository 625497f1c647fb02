package value_objects

import "fmt"

// Visibility controls whether an activity entry may ever be shown to
// the ticket's reporter. Internal entries never reach the reporter;
// user-visible entries reach them once any required approval is given.
type Visibility string

const (
	VisibilityInternal    Visibility = "internal"
	VisibilityUserVisible Visibility = "user_visible"
)

func (v Visibility) String() string {
	return string(v)
}

func (v Visibility) IsValid() bool {
	return v == VisibilityInternal || v == VisibilityUserVisible
}

func (v Visibility) IsUserVisible() bool {
	return v == VisibilityUserVisible
}

func NewVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid visibility: %s", s)
	}
	return v, nil
}
