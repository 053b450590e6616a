package types

import "github.com/m-mizutani/goerr/v2"

// SlotName identifies a named document slot on a case. Every slot except
// evidence is single-valued and written wholesale by the transition that
// owns it; evidence is append-only up to its capacity.
type SlotName string

const (
	SlotEvidence   SlotName = "evidence"
	SlotNTE        SlotName = "fileNTE"
	SlotEscalation SlotName = "fileEscalation"
	SlotMOM        SlotName = "fileMOM"
	SlotNDA        SlotName = "fileNDA"
	SlotFindings   SlotName = "fileFindings"
)

// AllSlotNames returns all document slot names
func AllSlotNames() []SlotName {
	return []SlotName{
		SlotEvidence,
		SlotNTE,
		SlotEscalation,
		SlotMOM,
		SlotNDA,
		SlotFindings,
	}
}

// IsValid checks if the slot name is valid
func (s SlotName) IsValid() bool {
	for _, v := range AllSlotNames() {
		if v == s {
			return true
		}
	}
	return false
}

// Capacity returns the maximum number of documents the slot may hold
func (s SlotName) Capacity() int {
	if s == SlotEvidence {
		return 2
	}
	return 1
}

// String returns the string representation of the slot name
func (s SlotName) String() string {
	return string(s)
}

// ParseSlotName parses a string into a SlotName
func ParseSlotName(v string) (SlotName, error) {
	s := SlotName(v)
	if !s.IsValid() {
		return "", goerr.New("invalid document slot", goerr.V("input", v))
	}
	return s, nil
}
