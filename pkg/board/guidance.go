package board

import (
	"fmt"
	"strings"
)

// GuidanceLookup resolves destination-specific entry-requirements text.
// The engine treats it as an external collaborator: a lookup failure is
// swallowed and the note stays empty.
type GuidanceLookup interface {
	LookupEntryRequirements(destinationName string) (string, error)
}

// StaticGuidance is a GuidanceLookup backed by a fixed table keyed by
// lowercased destination name, with generic boilerplate for unknown names.
type StaticGuidance struct {
	notes map[string]string
}

// NewStaticGuidance creates a StaticGuidance from a name -> note table.
// Keys are matched case-insensitively.
func NewStaticGuidance(notes map[string]string) *StaticGuidance {
	lowered := make(map[string]string, len(notes))
	for k, v := range notes {
		lowered[strings.ToLower(k)] = v
	}
	return &StaticGuidance{notes: lowered}
}

// LookupEntryRequirements returns the note for the destination, or generic
// boilerplate when the destination is not in the table.
func (g *StaticGuidance) LookupEntryRequirements(destinationName string) (string, error) {
	if note, ok := g.notes[strings.ToLower(destinationName)]; ok {
		return note, nil
	}
	return fmt.Sprintf(
		"Check passport validity, visa requirements, and local entry rules for %s before departure.",
		destinationName,
	), nil
}
