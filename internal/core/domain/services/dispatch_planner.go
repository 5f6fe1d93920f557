package services

import (
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/carrier"
)

// ErrNoPendingSelections is returned when a dispatch plan is requested for an
// order without any pending carrier selections.
var ErrNoPendingSelections = errors.New("no pending carrier selections to dispatch")

// DispatchGroup is one carrier's share of a dispatch plan: the pending
// selections assigned to that carrier and their total quantity.
type DispatchGroup struct {
	CarrierCode   string
	Selections    []*carrier.Selection
	TotalQuantity int
}

// DispatchPlanner is a domain service that groups an order's pending carrier
// selections by carrier into a dispatch plan. Applying the plan moves the
// grouped selections into the processing state.
type DispatchPlanner struct{}

// NewDispatchPlanner creates a new DispatchPlanner instance.
func NewDispatchPlanner() DispatchPlanner {
	return DispatchPlanner{}
}

// Plan groups the ledger's pending selections by carrier.
// Groups are ordered by carrier code for stable output.
func (d DispatchPlanner) Plan(ledger *carrier.Ledger) ([]DispatchGroup, error) {
	byCarrier := make(map[string]*DispatchGroup)
	for _, s := range ledger.Selections() {
		if s.Status() != carrier.SelectionStatusPending {
			continue
		}

		group, ok := byCarrier[s.CarrierCode()]
		if !ok {
			group = &DispatchGroup{CarrierCode: s.CarrierCode()}
			byCarrier[s.CarrierCode()] = group
		}
		group.Selections = append(group.Selections, s)
		group.TotalQuantity += s.Quantity()
	}

	if len(byCarrier) == 0 {
		return nil, ErrNoPendingSelections
	}

	groups := make([]DispatchGroup, 0, len(byCarrier))
	for _, group := range byCarrier {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CarrierCode < groups[j].CarrierCode
	})
	return groups, nil
}

// Apply marks every selection of the planned groups as processing.
func (d DispatchPlanner) Apply(groups []DispatchGroup) {
	for _, group := range groups {
		for _, s := range group.Selections {
			s.MarkProcessing()
		}
	}
}
