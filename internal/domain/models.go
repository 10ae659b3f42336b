package domain

// Domain contains core models of the Artifacts MMO API.

// Character identifies the acting game entity.
type Character struct {
	Name string
}

// Anti is the default character.
var Anti = Character{Name: "anti"}

// Path returns the character's URL segment, e.g. "my/anti".
func (c Character) Path() string {
	return "my/" + c.Name
}

// Action is a character verb accepted by the API.
type Action string

const (
	ActionMove   Action = "move"
	ActionAttack Action = "attack"
)

// Path returns the action's URL segment, e.g. "action/move".
func (a Action) Path() string {
	return "action/" + string(a)
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionMove, ActionAttack:
		return true
	}
	return false
}

// ParseAction maps a verb to an Action.
func ParseAction(verb string) (Action, bool) {
	a := Action(verb)
	return a, a.Valid()
}

// Point is a map coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Announcement is a server notice as published in the status payload.
type Announcement struct {
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// StatusInfo is the server status payload.
type StatusInfo struct {
	Status           string         `json:"status"`
	Version          string         `json:"version"`
	CharactersOnline int            `json:"characters_online"`
	Announcements    []Announcement `json:"announcements"`
	LastWipe         string         `json:"last_wipe"`
	NextWipe         string         `json:"next_wipe"`
}
