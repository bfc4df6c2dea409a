package service

import (
	"courtside_backend/internal/model"
	"courtside_backend/internal/util"
	"errors"
	"testing"
)

func newItems(statuses ...model.CurriculumItemStatus) []model.CurriculumItem {
	items := make([]model.CurriculumItem, len(statuses))
	for i, st := range statuses {
		items[i] = model.CurriculumItem{
			BaseModel: model.BaseModel{ID: uint(i + 1)},
			Type:      model.ItemLesson,
			ContentID: uint(100 + i),
			Order:     i + 1,
			Status:    st,
		}
	}
	return items
}

func assertStatuses(t *testing.T, items []model.CurriculumItem, want ...model.CurriculumItemStatus) {
	t.Helper()
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i := range items {
		if items[i].Status != want[i] {
			t.Fatalf("item %d status = %s, want %s", items[i].ID, items[i].Status, want[i])
		}
	}
}

func TestComputeUnlocksFreshCurriculum(t *testing.T) {
	items := newItems(model.ItemLocked, model.ItemLocked, model.ItemLocked)
	out := ComputeUnlocks(items)
	assertStatuses(t, out, model.ItemUnlocked, model.ItemLocked, model.ItemLocked)

	// input untouched
	assertStatuses(t, items, model.ItemLocked, model.ItemLocked, model.ItemLocked)
}

func TestComputeUnlocksIsIdempotent(t *testing.T) {
	items := newItems(model.ItemCompleted, model.ItemInProgress, model.ItemLocked, model.ItemLocked)
	once := ComputeUnlocks(items)
	twice := ComputeUnlocks(once)
	assertStatuses(t, twice, model.ItemCompleted, model.ItemInProgress, model.ItemLocked, model.ItemLocked)
	for i := range once {
		if once[i].Status != twice[i].Status {
			t.Fatalf("item %d changed on second pass: %s -> %s", once[i].ID, once[i].Status, twice[i].Status)
		}
	}
}

func TestComputeUnlocksPreservesInProgressAtFrontier(t *testing.T) {
	items := newItems(model.ItemCompleted, model.ItemInProgress, model.ItemLocked)
	out := ComputeUnlocks(items)
	assertStatuses(t, out, model.ItemCompleted, model.ItemInProgress, model.ItemLocked)
}

func TestComputeUnlocksRelocksDriftedItems(t *testing.T) {
	// Items past the frontier that were wrongly opened get locked again.
	items := newItems(model.ItemLocked, model.ItemUnlocked, model.ItemUnlocked)
	out := ComputeUnlocks(items)
	assertStatuses(t, out, model.ItemUnlocked, model.ItemLocked, model.ItemLocked)
}

func TestComputeUnlocksCompletedNeverRegresses(t *testing.T) {
	items := newItems(model.ItemCompleted, model.ItemLocked, model.ItemCompleted, model.ItemLocked)
	out := ComputeUnlocks(items)
	// Frontier is item 2 even though item 3 after it is completed.
	assertStatuses(t, out, model.ItemCompleted, model.ItemUnlocked, model.ItemCompleted, model.ItemLocked)
}

func TestComputeUnlocksDuplicateOrderOpensBoth(t *testing.T) {
	items := newItems(model.ItemLocked, model.ItemLocked, model.ItemLocked)
	items[1].Order = 1 // same as item 1
	out := ComputeUnlocks(items)
	assertStatuses(t, out, model.ItemUnlocked, model.ItemUnlocked, model.ItemLocked)
}

func TestRecordCompletionAdvancesLinearly(t *testing.T) {
	items := newItems(model.ItemLocked, model.ItemLocked, model.ItemLocked, model.ItemLocked)
	items = ComputeUnlocks(items)

	for step := 0; step < 4; step++ {
		next, ok := NextItem(items)
		if !ok {
			t.Fatalf("step %d: expected a next item", step)
		}
		if next.ID != uint(step+1) {
			t.Fatalf("step %d: next = item %d, want item %d", step, next.ID, step+1)
		}

		var err error
		items, err = RecordCompletion(items, next.ID)
		if err != nil {
			t.Fatalf("step %d: RecordCompletion: %v", step, err)
		}
		if items[step].Status != model.ItemCompleted {
			t.Fatalf("step %d: item not completed", step)
		}
		if step+1 < len(items) && items[step+1].Status != model.ItemUnlocked {
			t.Fatalf("step %d: successor not unlocked", step)
		}
	}

	if _, ok := NextItem(items); ok {
		t.Fatal("finished curriculum should have no next item")
	}
}

func TestRecordCompletionUnknownItem(t *testing.T) {
	items := ComputeUnlocks(newItems(model.ItemLocked, model.ItemLocked))
	_, err := RecordCompletion(items, 99)
	if !errors.Is(err, util.ErrCurriculumItemNotFound) {
		t.Fatalf("err = %v, want ErrCurriculumItemNotFound", err)
	}
}

func TestRecordCompletionAlreadyCompletedIsNoOp(t *testing.T) {
	items := ComputeUnlocks(newItems(model.ItemCompleted, model.ItemLocked, model.ItemLocked))
	out, err := RecordCompletion(items, 1)
	if !errors.Is(err, util.ErrCurriculumItemCompleted) {
		t.Fatalf("err = %v, want ErrCurriculumItemCompleted", err)
	}
	// State is still returned normalized so callers can persist it.
	assertStatuses(t, out, model.ItemCompleted, model.ItemUnlocked, model.ItemLocked)
}

func TestRecordCompletionDoesNotMutateInput(t *testing.T) {
	items := ComputeUnlocks(newItems(model.ItemLocked, model.ItemLocked))
	before := items[0].Status
	if _, err := RecordCompletion(items, 1); err != nil {
		t.Fatalf("RecordCompletion: %v", err)
	}
	if items[0].Status != before {
		t.Fatal("input slice was mutated")
	}
}

func TestNextItemPrefersLowestOrder(t *testing.T) {
	items := newItems(model.ItemCompleted, model.ItemUnlocked, model.ItemLocked)
	next, ok := NextItem(items)
	if !ok || next.ID != 2 {
		t.Fatalf("next = %+v ok=%v, want item 2", next, ok)
	}
}

func TestNextItemTieBreaksOnInputOrder(t *testing.T) {
	items := newItems(model.ItemUnlocked, model.ItemUnlocked)
	items[1].Order = 1
	next, ok := NextItem(items)
	if !ok || next.ID != 1 {
		t.Fatalf("next = %+v ok=%v, want first-listed item 1", next, ok)
	}
}

func TestStartItem(t *testing.T) {
	t.Run("unlocked to in_progress", func(t *testing.T) {
		items := newItems(model.ItemLocked, model.ItemLocked)
		out, err := StartItem(items, 1)
		if err != nil {
			t.Fatalf("StartItem: %v", err)
		}
		assertStatuses(t, out, model.ItemInProgress, model.ItemLocked)
	})

	t.Run("locked rejected", func(t *testing.T) {
		items := newItems(model.ItemLocked, model.ItemLocked)
		if _, err := StartItem(items, 2); !errors.Is(err, util.ErrCurriculumItemLocked) {
			t.Fatalf("err = %v, want ErrCurriculumItemLocked", err)
		}
	})

	t.Run("in_progress is a no-op", func(t *testing.T) {
		items := newItems(model.ItemInProgress, model.ItemLocked)
		out, err := StartItem(items, 1)
		if err != nil {
			t.Fatalf("StartItem: %v", err)
		}
		assertStatuses(t, out, model.ItemInProgress, model.ItemLocked)
	})

	t.Run("unknown item", func(t *testing.T) {
		items := newItems(model.ItemLocked)
		if _, err := StartItem(items, 42); !errors.Is(err, util.ErrCurriculumItemNotFound) {
			t.Fatalf("err = %v, want ErrCurriculumItemNotFound", err)
		}
	})
}
