package models

import (
	"fmt"
	"strings"
)

// Status is the pull request status filter applied to the visible list.
type Status int

// Status filter values.
const (
	StatusOpen Status = iota
	StatusMerged
	StatusDeclined
	StatusAll
)

// ParseStatus parses a status literal. Matching is case-insensitive.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "open":
		return StatusOpen, nil
	case "merged":
		return StatusMerged, nil
	case "declined":
		return StatusDeclined, nil
	case "all":
		return StatusAll, nil
	default:
		return StatusOpen, fmt.Errorf("invalid status %q, expected open|merged|declined|all", value)
	}
}

// String returns the lowercase literal used in commands and config.
func (s Status) String() string {
	switch s {
	case StatusMerged:
		return "merged"
	case StatusDeclined:
		return "declined"
	case StatusAll:
		return "all"
	default:
		return "open"
	}
}

// QueryState returns the API state literal for the status, or "" for All
// which places no state constraint on the query.
func (s Status) QueryState() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusMerged:
		return "MERGED"
	case StatusDeclined:
		return "DECLINED"
	default:
		return ""
	}
}

// Matches reports whether a pull request state satisfies the filter.
func (s Status) Matches(state string) bool {
	if s == StatusAll {
		return true
	}
	return strings.EqualFold(state, s.QueryState())
}

// StatusLiterals lists the accepted status tokens in command order.
func StatusLiterals() []string {
	return []string{"open", "merged", "declined", "all"}
}

// MarshalYAML stores the status as its lowercase literal.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts any casing of the four literals.
func (s *Status) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if raw == "" {
		*s = StatusOpen
		return nil
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
