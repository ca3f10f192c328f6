package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusRetired   Status = "retired"
	StatusRepairing Status = "repairing"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusRetired, StatusRepairing:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidStatus, s)
	}

	return status, nil
}

func AllStatuses() []Status {
	return []Status{StatusActive, StatusRetired, StatusRepairing}
}
