package preflight

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external executable audiosplit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Path      string
	Available bool
	Detail    string
}

func (s Status) summary() string {
	if s.Available {
		return fmt.Sprintf("%s (%s)", s.Path, s.Description)
	}
	if s.Optional {
		return s.Detail + " (optional)"
	}
	return s.Detail
}

// CheckBinaries resolves every requirement on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Path = path
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
