package calculator

import (
	"dentalsite/internal/catalog"
)

// Controller enforces the linear wizard protocol
// service_selection -> option_selection -> results over one catalog.
type Controller struct {
	services []catalog.Service
	resolver *Resolver
}

func NewController(services []catalog.Service, resolver *Resolver) *Controller {
	return &Controller{services: services, resolver: resolver}
}

func (c *Controller) Services() []catalog.Service {
	return c.services
}

func (c *Controller) Resolver() *Resolver {
	return c.resolver
}

func (c *Controller) Service(id string) (catalog.Service, bool) {
	return catalog.Find(c.services, id)
}

// RequiresMaterial reports whether the service exposes a material choice,
// i.e. its price entry carries a premium multiplier.
func (c *Controller) RequiresMaterial(serviceID string) bool {
	svc, ok := c.Service(serviceID)
	if !ok {
		return false
	}
	entry, _ := c.resolver.Lookup(svc.Slug)
	return entry.HasPremium()
}

// CanAdvance is the predicate UIs use to enable the "next" control.
func (c *Controller) CanAdvance(s State) bool {
	switch s.Step {
	case StepServiceSelection:
		_, ok := c.Service(s.SelectedServiceID)
		return ok
	case StepOptionSelection:
		if _, ok := c.Service(s.SelectedServiceID); !ok {
			return false
		}
		return !c.RequiresMaterial(s.SelectedServiceID) || s.MaterialTier != MaterialNone
	default:
		return false
	}
}

func (c *Controller) CanRetreat(s State) bool {
	return s.Step == StepOptionSelection || s.Step == StepResults
}

// Reduce applies a to s. Transitions that are not valid in s return s
// unchanged.
func (c *Controller) Reduce(s State, a Action) State {
	switch a.Type {
	case ActionSelectService:
		if s.Step != StepServiceSelection {
			return s
		}
		if _, ok := c.Service(a.ServiceID); !ok {
			return s
		}
		s.SelectedServiceID = a.ServiceID
		return s

	case ActionAdvance:
		if !c.CanAdvance(s) {
			return s
		}
		switch s.Step {
		case StepServiceSelection:
			s.Step = StepOptionSelection
		case StepOptionSelection:
			s.Step = StepResults
		}
		return s

	case ActionRetreat:
		switch s.Step {
		case StepResults:
			s.Step = StepOptionSelection
		case StepOptionSelection:
			s.Step = StepServiceSelection
		}
		return s

	case ActionSetQuantity:
		s.Quantity = ClampQuantity(a.Quantity)
		return s

	case ActionSetMaterial:
		if a.Material != MaterialStandard && a.Material != MaterialPremium {
			return s
		}
		s.MaterialTier = a.Material
		return s

	case ActionReset:
		return InitialState()

	default:
		return s
	}
}

// Estimate prices the current selection. It is available as soon as a
// known service is selected.
func (c *Controller) Estimate(s State) (PriceEstimate, bool) {
	svc, ok := c.Service(s.SelectedServiceID)
	if !ok {
		return PriceEstimate{}, false
	}
	return c.resolver.Resolve(svc.Slug, s.Quantity, s.MaterialTier), true
}
