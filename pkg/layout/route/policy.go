package route

import (
	"errors"
	"strings"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/layout/pathfind"
)

// ErrUnknownPolicy is returned by [ParsePolicy] for an unrecognized name.
var ErrUnknownPolicy = errors.New("unknown routing policy")

// Policy selects how connections are routed.
type Policy struct {
	Name string
	// Cost prices taken cells during path search.
	Cost pathfind.CostPolicy
	// Backtrack enables the exhaustive anchor search. Without it the router
	// makes one greedy pass and stops at the first unroutable connection.
	Backtrack bool
}

var (
	// Strict never lets paths cross and backtracks over anchor choices.
	// Either every connection is routed or none is.
	Strict = Policy{Name: "strict", Cost: pathfind.Strict{}, Backtrack: true}

	// Permissive routes greedily and lets paths cross at a penalty.
	Permissive = Policy{Name: "permissive", Cost: pathfind.Permissive{Penalty: pathfind.DefaultPenalty}}
)

// Policies lists the built-in policies by name.
var Policies = []Policy{Strict, Permissive}

// PolicyNames returns the names of the built-in policies.
func PolicyNames() []string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = p.Name
	}
	return names
}

// ParsePolicy returns the built-in policy with the given name. An empty
// name selects [Strict].
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Strict, nil
	}
	for _, p := range Policies {
		if p.Name == name {
			return p, nil
		}
	}
	return Policy{}, errs.Wrap(errs.ErrCodeInvalidInput, ErrUnknownPolicy,
		"%q (want one of %s)", name, strings.Join(PolicyNames(), ", "))
}

func (p Policy) String() string { return p.Name }
