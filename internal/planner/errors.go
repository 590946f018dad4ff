package planner

import "fmt"

type UnknownSectionError struct {
	ID string
}

func (e UnknownSectionError) Error() string {
	return fmt.Sprintf("section not found: %s", e.ID)
}

type UnknownItemError struct {
	SectionID string
	ID        string
}

func (e UnknownItemError) Error() string {
	if e.SectionID == "" {
		return fmt.Sprintf("item not found: %s", e.ID)
	}
	return fmt.Sprintf("item not found in section %s: %s", e.SectionID, e.ID)
}

type UnknownColumnError struct {
	Index int
}

func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("column not found: %d", e.Index)
}

type IndexOutOfRangeError struct {
	Index int
	// Max is the largest valid index (inclusive).
	Max int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d]", e.Index, e.Max)
}

type KindMismatchError struct {
	SectionID string
	Op        string
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("%s requires a list section: %s", e.Op, e.SectionID)
}
