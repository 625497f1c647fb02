package value_objects

import "fmt"

type AuthorType string

const (
	AuthorUser   AuthorType = "user"
	AuthorAdmin  AuthorType = "admin"
	AuthorAgent  AuthorType = "agent"
	AuthorSystem AuthorType = "system"
)

var validAuthorTypes = map[AuthorType]bool{
	AuthorUser:   true,
	AuthorAdmin:  true,
	AuthorAgent:  true,
	AuthorSystem: true,
}

func (a AuthorType) String() string {
	return string(a)
}

func (a AuthorType) IsValid() bool {
	return validAuthorTypes[a]
}

func (a AuthorType) IsAgent() bool {
	return a == AuthorAgent
}

func (a AuthorType) IsAdmin() bool {
	return a == AuthorAdmin
}

func NewAuthorType(s string) (AuthorType, error) {
	a := AuthorType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid author type: %s", s)
	}
	return a, nil
}

// Actor identifies who performed a mutating operation. It is resolved
// by the authentication layer before any engine operation runs and is
// never persisted on its own; it only attributes activity entries.
type Actor struct {
	Type AuthorType
	Name string
}

func NewActor(authorType, name string) (Actor, error) {
	at, err := NewAuthorType(authorType)
	if err != nil {
		return Actor{}, err
	}
	if name == "" {
		return Actor{}, fmt.Errorf("actor name is required")
	}
	return Actor{Type: at, Name: name}, nil
}

// SystemActor is the attribution for engine-generated entries.
func SystemActor() Actor {
	return Actor{Type: AuthorSystem, Name: "system"}
}

func (a Actor) Validate() error {
	if !a.Type.IsValid() {
		return fmt.Errorf("invalid actor type: %s", a.Type)
	}
	if a.Name == "" {
		return fmt.Errorf("actor name is required")
	}
	return nil
}
