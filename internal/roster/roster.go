// ABOUTME: Fixed roster of voiced characters
// ABOUTME: Immutable character list with lookup and wrap-around selection
package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCharacter is returned when an id is not in the roster
	ErrUnknownCharacter = errors.New("roster: unknown character")

	// ErrInvalid is returned for an empty roster or malformed entries
	ErrInvalid = errors.New("roster: invalid definition")
)

// Character is one selectable speaker. Everything except Voice is display
// metadata.
type Character struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`
	Voice       string `yaml:"voice"`
	Color       string `yaml:"color"`
	AvatarSeed  string `yaml:"avatar_seed"`
}

// Roster is a read-only, ordered set of characters
type Roster struct {
	characters []Character
	index      map[string]int
	script     string
}

// New validates characters and builds a roster. An empty script falls
// back to DefaultScript.
func New(characters []Character, script string) (*Roster, error) {
	if len(characters) == 0 {
		return nil, fmt.Errorf("%w: no characters", ErrInvalid)
	}

	r := &Roster{
		characters: make([]Character, len(characters)),
		index:      make(map[string]int, len(characters)),
		script:     script,
	}
	if r.script == "" {
		r.script = DefaultScript
	}

	for i, c := range characters {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: character %d has no id", ErrInvalid, i)
		}
		if c.Name == "" || c.Voice == "" {
			return nil, fmt.Errorf("%w: character %q needs a name and a voice", ErrInvalid, c.ID)
		}
		if _, dup := r.index[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate character id %q", ErrInvalid, c.ID)
		}
		if c.AvatarSeed == "" {
			c.AvatarSeed = c.ID
		}
		r.characters[i] = c
		r.index[c.ID] = i
	}

	return r, nil
}

// Len returns the number of characters
func (r *Roster) Len() int {
	return len(r.characters)
}

// All returns a copy of the characters in display order
func (r *Roster) All() []Character {
	out := make([]Character, len(r.characters))
	copy(out, r.characters)
	return out
}

// First returns the initially selected character
func (r *Roster) First() Character {
	return r.characters[0]
}

// Script returns the script the editor starts with
func (r *Roster) Script() string {
	return r.script
}

// Lookup finds a character by id
func (r *Roster) Lookup(id string) (Character, error) {
	i, ok := r.index[id]
	if !ok {
		return Character{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, id)
	}
	return r.characters[i], nil
}

// Index returns the position of id, or -1
func (r *Roster) Index(id string) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return i
}

// Next returns the character after id, wrapping around
func (r *Roster) Next(id string) Character {
	return r.characters[(r.Index(id)+1)%len(r.characters)]
}

// Prev returns the character before id, wrapping around
func (r *Roster) Prev(id string) Character {
	i := r.Index(id)
	if i < 0 {
		return r.characters[len(r.characters)-1]
	}
	return r.characters[(i-1+len(r.characters))%len(r.characters)]
}
