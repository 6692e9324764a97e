package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// ChecklistItem is one step of a service order. Positions are dense 0..n-1.
type ChecklistItem struct {
	ID             uuid.UUID
	ServiceOrderID uuid.UUID
	Position       int
	Description    string
	Done           bool
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

// AddChecklistItem appends an item at the next position
func (so *ServiceOrder) AddChecklistItem(description string) (*ChecklistItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewValidationError("Checklist item description cannot be empty")
	}
	so.Checklist = append(so.Checklist, ChecklistItem{
		ID:             uuid.New(),
		ServiceOrderID: so.ID,
		Position:       len(so.Checklist),
		Description:    description,
		CreatedAt:      time.Now(),
	})
	so.Touch()
	so.AddDomainEvent(NewChecklistChangedEvent(so))
	return &so.Checklist[len(so.Checklist)-1], nil
}

// ToggleChecklistItem sets the done flag. The completion time is stamped only
// when the flag flips to true and cleared when it flips to false; repeating
// the current value changes nothing. Returns whether anything changed.
func (so *ServiceOrder) ToggleChecklistItem(itemID uuid.UUID, done bool, now time.Time) (bool, error) {
	idx := so.checklistIndex(itemID)
	if idx < 0 {
		return false, shared.NewNotFoundError("Checklist item")
	}
	item := &so.Checklist[idx]
	if item.Done == done {
		return false, nil
	}
	item.Done = done
	if done {
		item.CompletedAt = &now
	} else {
		item.CompletedAt = nil
	}
	so.Touch()
	so.AddDomainEvent(NewChecklistChangedEvent(so))
	return true, nil
}

// RemoveChecklistItem deletes an item and closes the gap in positions
func (so *ServiceOrder) RemoveChecklistItem(itemID uuid.UUID) error {
	idx := so.checklistIndex(itemID)
	if idx < 0 {
		return shared.NewNotFoundError("Checklist item")
	}
	so.Checklist = append(so.Checklist[:idx], so.Checklist[idx+1:]...)
	so.renumberChecklist()
	so.Touch()
	so.AddDomainEvent(NewChecklistChangedEvent(so))
	return nil
}

// ReorderChecklist rewrites positions to follow itemIDs, which must name
// every item exactly once
func (so *ServiceOrder) ReorderChecklist(itemIDs []uuid.UUID) error {
	if len(itemIDs) != len(so.Checklist) {
		return shared.NewValidationError("Reorder must list every checklist item exactly once")
	}
	reordered := make([]ChecklistItem, 0, len(itemIDs))
	seen := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		idx := so.checklistIndex(id)
		if idx < 0 || seen[id] {
			return shared.NewValidationError("Reorder must list every checklist item exactly once")
		}
		seen[id] = true
		reordered = append(reordered, so.Checklist[idx])
	}
	so.Checklist = reordered
	so.renumberChecklist()
	so.Touch()
	so.AddDomainEvent(NewChecklistChangedEvent(so))
	return nil
}

// ChecklistItem returns the loaded item with the given id, or nil
func (so *ServiceOrder) ChecklistItem(itemID uuid.UUID) *ChecklistItem {
	if idx := so.checklistIndex(itemID); idx >= 0 {
		return &so.Checklist[idx]
	}
	return nil
}

func (so *ServiceOrder) checklistIndex(itemID uuid.UUID) int {
	for i := range so.Checklist {
		if so.Checklist[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (so *ServiceOrder) renumberChecklist() {
	for i := range so.Checklist {
		so.Checklist[i].Position = i
	}
}
