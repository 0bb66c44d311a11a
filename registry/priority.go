package registry

// PriorityClass orders step definitions and callbacks. A higher class
// wins at match time and survives clears scoped to lower classes:
// Clear(User) is the between-runs reset and never touches Library or
// System registrations.
type PriorityClass int

const (
	// User is the default class for registrations made by test authors.
	User PriorityClass = iota
	// Library is for definitions shipped by reusable step libraries.
	Library
	// System is for definitions owned by the framework itself.
	System
)

func (p PriorityClass) String() string {
	switch p {
	case User:
		return "user"
	case Library:
		return "library"
	case System:
		return "system"
	default:
		return "unknown"
	}
}
