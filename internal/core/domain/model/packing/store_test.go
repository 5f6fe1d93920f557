package packing_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore builds a store over an order with three lines:
// index 0 (qty 10, standalone), index 1 (qty 2, parent), index 2 (qty 4, child).
// Child lines belong to their parent and are not addressable for packing.
func createTestStore(t *testing.T, packages ...*packing.Package) *packing.Store {
	t.Helper()

	lineA, err := order.NewLine(0, "SKU-A", "Widget A", 10)
	require.NoError(t, err)
	lineB, err := order.NewLine(1, "SKU-B", "Bundle B", 2)
	require.NoError(t, err)
	lineC, err := order.NewLine(2, "SKU-C", "Component C", 4)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1001",
		[]order.Line{lineA, lineB, lineC},
		map[int]order.Role{1: order.RoleParent, 2: order.RoleChild})
	require.NoError(t, err)

	store, err := packing.NewStore(o, packages)
	require.NoError(t, err)
	return store
}

func createLockedPackage(t *testing.T, creatorID string, lineIndex, quantity int) *packing.Package {
	t.Helper()

	content, err := packing.NewContent(lineIndex, "SKU-A", quantity, "")
	require.NoError(t, err)

	p, err := packing.RestorePackage(kernel.NewUUID(), creatorID, "medium",
		createTestDimensions(t), 1.0, "", []packing.Content{content})
	require.NoError(t, err)
	return p
}

func TestStore_Accounting(t *testing.T) {
	t.Run("empty store has nothing allocated", func(t *testing.T) {
		store := createTestStore(t)

		assert.Empty(t, store.Allocated())
		assert.Equal(t, 0, store.AllocatedTo(0))
		assert.Equal(t, 10, store.Remaining(0))
	})

	t.Run("remaining is zero for unknown lines", func(t *testing.T) {
		store := createTestStore(t)

		assert.Equal(t, 0, store.Remaining(9))
	})

	t.Run("allocations sum across packages", func(t *testing.T) {
		store := createTestStore(t)

		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		_, err = store.SetContentQuantity(0, "user-a", 0, 4)
		require.NoError(t, err)
		_, err = store.SetContentQuantity(1, "user-a", 0, 3)
		require.NoError(t, err)

		assert.Equal(t, 7, store.AllocatedTo(0))
		assert.Equal(t, 3, store.Remaining(0))
		assert.Equal(t, map[int]int{0: 7}, store.Allocated())
	})
}

func TestStore_SetContentQuantity(t *testing.T) {
	t.Run("should clamp to available instead of rejecting", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.SetContentQuantity(0, "user-a", 0, 7)
		require.NoError(t, err)

		applied, err := store.SetContentQuantity(1, "user-a", 0, 5)

		require.NoError(t, err)
		assert.Equal(t, 3, applied)
		assert.Equal(t, 10, store.AllocatedTo(0))
	})

	t.Run("lowering a row frees quantity for other packages", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.SetContentQuantity(0, "user-a", 0, 10)
		require.NoError(t, err)

		applied, err := store.SetContentQuantity(0, "user-a", 0, 6)

		require.NoError(t, err)
		assert.Equal(t, 6, applied)
		assert.Equal(t, 4, store.Remaining(0))
	})

	t.Run("zero removes the content row", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.SetContentQuantity(0, "user-a", 0, 5)
		require.NoError(t, err)

		applied, err := store.SetContentQuantity(0, "user-a", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, applied)
		assert.Empty(t, store.Packages()[0].Contents())
	})

	t.Run("negative requests clamp to zero", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		applied, err := store.SetContentQuantity(0, "user-a", 0, -3)

		require.NoError(t, err)
		assert.Equal(t, 0, applied)
	})

	t.Run("should refuse child-role lines", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		_, err = store.SetContentQuantity(0, "user-a", 2, 1)

		require.ErrorIs(t, err, packing.ErrLineIsNotPackable)
	})

	t.Run("should refuse unknown lines", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		_, err = store.SetContentQuantity(0, "user-a", 9, 1)

		require.Error(t, err)
	})

	t.Run("should refuse a package locked by another user", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 2)
		store := createTestStore(t, locked)

		_, err := store.SetContentQuantity(0, "user-b", 0, 5)

		require.ErrorIs(t, err, packing.ErrPackageLocked)
		assert.Equal(t, 2, store.AllocatedTo(0))
	})
}

func TestStore_AddLineToPackage(t *testing.T) {
	t.Run("should merge into an existing row", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		added, err := store.AddLineToPackage(0, "user-a", 0, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, added)

		added, err = store.AddLineToPackage(0, "user-a", 0, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, added)

		require.Len(t, store.Packages()[0].Contents(), 1)
		assert.Equal(t, 7, store.Packages()[0].QuantityOf(0))
	})

	t.Run("should clamp to the global remaining", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.AddLineToPackage(0, "user-a", 0, 8)
		require.NoError(t, err)

		added, err := store.AddLineToPackage(0, "user-a", 0, 8)

		require.NoError(t, err)
		assert.Equal(t, 2, added)
		assert.Equal(t, 0, store.Remaining(0))
	})

	t.Run("fully allocated line adds nothing", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.AddLineToPackage(0, "user-a", 1, 2)
		require.NoError(t, err)

		added, err := store.AddLineToPackage(0, "user-a", 1, 1)

		require.NoError(t, err)
		assert.Equal(t, 0, added)
	})

	t.Run("should reject non-positive requests", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		_, err = store.AddLineToPackage(0, "user-a", 0, 0)

		require.Error(t, err)
	})
}

func TestStore_DuplicatePackage(t *testing.T) {
	t.Run("duplicate is owned by the actor and clamped to remaining", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.SetContentQuantity(0, "user-a", 0, 7)
		require.NoError(t, err)

		duplicate, err := store.DuplicatePackage(0, "user-b")

		require.NoError(t, err)
		assert.Nil(t, duplicate.ID())
		assert.Equal(t, "user-b", duplicate.CreatorID())
		// 7 were in the original, only 3 remained for the copy.
		assert.Equal(t, 3, duplicate.QuantityOf(0))
		assert.Equal(t, 10, store.AllocatedTo(0))
	})

	t.Run("duplicating a locked package is allowed", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 4)
		store := createTestStore(t, locked)

		duplicate, err := store.DuplicatePackage(0, "user-b")

		require.NoError(t, err)
		assert.True(t, duplicate.CanEdit("user-b"))
		assert.Equal(t, 4, duplicate.QuantityOf(0))
		assert.Equal(t, 2, store.Len())
	})

	t.Run("should fail for out-of-range index", func(t *testing.T) {
		store := createTestStore(t)

		_, err := store.DuplicatePackage(3, "user-a")

		require.Error(t, err)
	})
}

func TestStore_RemovePackage(t *testing.T) {
	t.Run("should remove an editable package", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)

		require.NoError(t, store.RemovePackage(0, "user-b"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("should refuse a package locked by another user", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 2)
		store := createTestStore(t, locked)

		err := store.RemovePackage(0, "user-b")

		require.ErrorIs(t, err, packing.ErrPackageLocked)
		assert.Equal(t, 1, store.Len())
	})
}

func TestStore_MergeDraft(t *testing.T) {
	t.Run("draft replaces editable packages", func(t *testing.T) {
		store := createTestStore(t)
		_, err := store.AddEmptyPackage("user-a")
		require.NoError(t, err)
		_, err = store.SetContentQuantity(0, "user-a", 0, 5)
		require.NoError(t, err)

		draftPkg, err := packing.NewPackage("draft")
		require.NoError(t, err)
		draftStore := createTestStore(t, draftPkg)
		_, err = draftStore.SetContentQuantity(0, "user-b", 0, 8)
		require.NoError(t, err)

		err = store.MergeDraft([]*packing.Package{draftPkg}, "user-b")

		require.NoError(t, err)
		require.Equal(t, 1, store.Len())
		assert.Equal(t, "user-b", store.Packages()[0].CreatorID())
		assert.Equal(t, 8, store.AllocatedTo(0))
	})

	t.Run("locked packages survive the draft unchanged", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 4)
		store := createTestStore(t, locked)

		// user-b's draft carries a mutated copy of the locked package and a
		// fresh package of their own.
		tampered, err := packing.RestorePackage(*locked.ID(), "user-b", "large",
			createTestDimensions(t), 9.0, "",
			[]packing.Content{createTestContent(t, 0, 9)})
		require.NoError(t, err)
		fresh, err := packing.NewPackage("user-b")
		require.NoError(t, err)
		freshStore := createTestStore(t, fresh)
		_, err = freshStore.SetContentQuantity(0, "user-b", 0, 3)
		require.NoError(t, err)

		err = store.MergeDraft([]*packing.Package{tampered, fresh}, "user-b")

		require.NoError(t, err)
		require.Equal(t, 2, store.Len())
		assert.Equal(t, "medium", store.Packages()[0].BoxType())
		assert.Equal(t, 4, store.Packages()[0].QuantityOf(0))
		assert.Equal(t, 3, store.Packages()[1].QuantityOf(0))
	})

	t.Run("a draft cannot delete another user's package", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 4)
		store := createTestStore(t, locked)

		err := store.MergeDraft(nil, "user-b")

		require.NoError(t, err)
		require.Equal(t, 1, store.Len())
		assert.Equal(t, "user-a", store.Packages()[0].CreatorID())
	})

	t.Run("editable rows are clamped around locked allocations", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 7)
		store := createTestStore(t, locked)

		draftPkg, err := packing.NewPackage("user-b")
		require.NoError(t, err)
		draftStore := createTestStore(t, draftPkg)
		_, err = draftStore.SetContentQuantity(0, "user-b", 0, 6)
		require.NoError(t, err)

		err = store.MergeDraft([]*packing.Package{draftPkg}, "user-b")

		require.NoError(t, err)
		assert.Equal(t, 10, store.AllocatedTo(0))
		assert.Equal(t, 3, store.Packages()[0].QuantityOf(0))
	})

	t.Run("resaving an own labeled package keeps the recorded label", func(t *testing.T) {
		labeled := createLockedPackage(t, "user-a", 0, 4)
		require.NoError(t, labeled.RecordLabel("TRK-1", "https://labels.test/trk-1.pdf"))
		store := createTestStore(t, labeled)

		// The save contract carries no label fields, so a resubmission of the
		// same package arrives label-less.
		resubmitted, err := packing.RestorePackage(*labeled.ID(), "user-a", "large",
			createTestDimensions(t), 2.0, "",
			[]packing.Content{createTestContent(t, 0, 4)})
		require.NoError(t, err)

		err = store.MergeDraft([]*packing.Package{resubmitted}, "user-a")

		require.NoError(t, err)
		require.Equal(t, 1, store.Len())
		merged := store.Packages()[0]
		assert.Equal(t, "large", merged.BoxType())
		assert.True(t, merged.HasLabel())
		assert.Equal(t, "TRK-1", merged.LabelCode())
		assert.Equal(t, "https://labels.test/trk-1.pdf", merged.LabelPDFURL())
	})

	t.Run("a draft cannot fabricate a label on a persisted package", func(t *testing.T) {
		unlabeled := createLockedPackage(t, "user-a", 0, 4)
		store := createTestStore(t, unlabeled)

		forged, err := packing.RestorePackage(*unlabeled.ID(), "user-a", "medium",
			createTestDimensions(t), 1.0, "",
			[]packing.Content{createTestContent(t, 0, 4)})
		require.NoError(t, err)
		require.NoError(t, forged.RecordLabel("TRK-FAKE", "https://labels.test/fake.pdf"))

		err = store.MergeDraft([]*packing.Package{forged}, "user-a")

		require.NoError(t, err)
		assert.False(t, store.Packages()[0].HasLabel())
	})

	t.Run("caller draft is never mutated", func(t *testing.T) {
		store := createTestStore(t)

		draftPkg, err := packing.NewPackage("user-b")
		require.NoError(t, err)
		draftStore := createTestStore(t, draftPkg)
		_, err = draftStore.SetContentQuantity(0, "user-b", 0, 5)
		require.NoError(t, err)

		require.NoError(t, store.MergeDraft([]*packing.Package{draftPkg}, "user-b"))
		_, err = store.SetContentQuantity(0, "user-b", 0, 2)
		require.NoError(t, err)

		assert.Equal(t, 5, draftPkg.QuantityOf(0))
	})

	t.Run("merging the same draft twice is idempotent", func(t *testing.T) {
		locked := createLockedPackage(t, "user-a", 0, 4)
		store := createTestStore(t, locked)

		draftPkg, err := packing.NewPackage("user-b")
		require.NoError(t, err)
		draftStore := createTestStore(t, draftPkg)
		_, err = draftStore.SetContentQuantity(0, "user-b", 0, 5)
		require.NoError(t, err)
		draft := []*packing.Package{draftPkg}

		require.NoError(t, store.MergeDraft(draft, "user-b"))
		firstLen := store.Len()
		firstAllocated := store.Allocated()

		require.NoError(t, store.MergeDraft(draft, "user-b"))

		assert.Equal(t, firstLen, store.Len())
		assert.Equal(t, firstAllocated, store.Allocated())
	})

	t.Run("rows for child-role lines are dropped", func(t *testing.T) {
		store := createTestStore(t)

		content, err := packing.NewContent(2, "SKU-C", 1, "")
		require.NoError(t, err)
		draftPkg, err := packing.RestorePackage(kernel.NewUUID(), "user-b", "medium",
			createTestDimensions(t), 1.0, "", []packing.Content{content})
		require.NoError(t, err)

		err = store.MergeDraft([]*packing.Package{draftPkg}, "user-b")

		require.NoError(t, err)
		require.Equal(t, 1, store.Len())
		assert.Equal(t, 0, store.Packages()[0].QuantityOf(2))
	})

	t.Run("should require the acting user", func(t *testing.T) {
		store := createTestStore(t)

		err := store.MergeDraft(nil, "")

		require.Error(t, err)
	})
}
