package service

import (
	"courtside_backend/internal/model"
	"courtside_backend/internal/util"
)

// The curriculum progress engine. Pure functions over in-memory items:
// callers load state, apply an operation, and persist the returned copy.
//
// Invariant enforced by ComputeUnlocks: exactly the items sharing the lowest
// order among non-completed items are open (unlocked, or in_progress if the
// student already started one); every item after the frontier is locked;
// completed items never regress. Duplicate order values are processed in
// input sequence and may open more than one item at once; order uniqueness
// is an upstream guarantee this engine does not enforce.

// ComputeUnlocks re-derives every item's status from the completion set and
// order values. It is idempotent and does not mutate its input.
func ComputeUnlocks(items []model.CurriculumItem) []model.CurriculumItem {
	out := make([]model.CurriculumItem, len(items))
	copy(out, items)

	frontier := 0
	hasFrontier := false
	for _, it := range out {
		if it.Status == model.ItemCompleted {
			continue
		}
		if !hasFrontier || it.Order < frontier {
			frontier = it.Order
			hasFrontier = true
		}
	}

	for i := range out {
		switch {
		case out[i].Status == model.ItemCompleted:
			// never regresses
		case hasFrontier && out[i].Order == frontier:
			if out[i].Status != model.ItemInProgress {
				out[i].Status = model.ItemUnlocked
			}
		default:
			out[i].Status = model.ItemLocked
		}
	}
	return out
}

// RecordCompletion marks the item completed and re-derives unlock state for
// the rest. A missing id is a caller bug surfaced as ErrCurriculumItemNotFound.
// An already-completed item returns ErrCurriculumItemCompleted with the
// normalized items; callers treat it as a no-op, not a failure.
func RecordCompletion(items []model.CurriculumItem, completedItemID uint) ([]model.CurriculumItem, error) {
	idx := -1
	for i := range items {
		if items[i].ID == completedItemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, util.ErrCurriculumItemNotFound
	}
	if items[idx].Status == model.ItemCompleted {
		return ComputeUnlocks(items), util.ErrCurriculumItemCompleted
	}

	out := make([]model.CurriculumItem, len(items))
	copy(out, items)
	out[idx].Status = model.ItemCompleted
	return ComputeUnlocks(out), nil
}

// NextItem returns the item to work on next: lowest order among unlocked
// items, first in input sequence winning ties.
func NextItem(items []model.CurriculumItem) (*model.CurriculumItem, bool) {
	idx := -1
	for i := range items {
		if items[i].Status != model.ItemUnlocked {
			continue
		}
		if idx == -1 || items[i].Order < items[idx].Order {
			idx = i
		}
	}
	if idx == -1 {
		return nil, false
	}
	it := items[idx]
	return &it, true
}

// StartItem moves an unlocked item to in_progress. Locked items are rejected;
// starting an in_progress or completed item is a no-op.
func StartItem(items []model.CurriculumItem, itemID uint) ([]model.CurriculumItem, error) {
	normalized := ComputeUnlocks(items)
	idx := -1
	for i := range normalized {
		if normalized[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, util.ErrCurriculumItemNotFound
	}

	switch normalized[idx].Status {
	case model.ItemLocked:
		return nil, util.ErrCurriculumItemLocked
	case model.ItemUnlocked:
		normalized[idx].Status = model.ItemInProgress
	}
	return normalized, nil
}
