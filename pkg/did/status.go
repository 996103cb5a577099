package did

import "fmt"

// Status is the lifecycle state the ledger records for an identifier
type Status int

const (
	StatusValid Status = iota + 1
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "VALID"
	case StatusDeleted:
		return "DELETED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus is the inverse of Status.String
func ParseStatus(s string) (Status, error) {
	switch s {
	case "VALID":
		return StatusValid, nil
	case "DELETED":
		return StatusDeleted, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}
