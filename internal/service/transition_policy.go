package service

import "github.com/piyukr2/Bed-Manager/internal/domain"

// TransitionPolicy decides which status moves the registry accepts. The
// permissive policy matches the historical behavior of the system (any status
// may move to any other); the strict policy encodes the operational lifecycle.
type TransitionPolicy interface {
	Allowed(from, to domain.BedStatus) bool
	Name() string
}

const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

// NewTransitionPolicy returns the policy for the given name, defaulting to
// permissive for unknown names.
func NewTransitionPolicy(name string) TransitionPolicy {
	if name == PolicyStrict {
		return strictPolicy{}
	}
	return permissivePolicy{}
}

type permissivePolicy struct{}

func (permissivePolicy) Allowed(domain.BedStatus, domain.BedStatus) bool { return true }
func (permissivePolicy) Name() string                                    { return PolicyPermissive }

type strictPolicy struct{}

var strictTransitions = map[domain.BedStatus][]domain.BedStatus{
	domain.StatusAvailable:   {domain.StatusOccupied, domain.StatusReserved, domain.StatusCleaning, domain.StatusMaintenance},
	domain.StatusOccupied:    {domain.StatusAvailable, domain.StatusCleaning, domain.StatusMaintenance},
	domain.StatusCleaning:    {domain.StatusAvailable, domain.StatusMaintenance},
	domain.StatusReserved:    {domain.StatusOccupied, domain.StatusAvailable, domain.StatusMaintenance},
	domain.StatusMaintenance: {domain.StatusCleaning, domain.StatusAvailable},
}

func (strictPolicy) Allowed(from, to domain.BedStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range strictTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

func (strictPolicy) Name() string { return PolicyStrict }
