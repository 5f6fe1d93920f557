package carrier_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestLedger builds a ledger over an order with three lines:
// index 0 (qty 10, standalone), index 1 (qty 2, parent), index 2 (qty 4, child).
func createTestLedger(t *testing.T, selections ...*carrier.Selection) *carrier.Ledger {
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

	ledger, err := carrier.NewLedger(o, selections)
	require.NoError(t, err)
	return ledger
}

func TestModeFromString(t *testing.T) {
	t.Run("should parse known modes", func(t *testing.T) {
		merge, err := carrier.ModeFromString("merge")
		require.NoError(t, err)
		assert.Equal(t, carrier.ModeMerge, merge)

		replace, err := carrier.ModeFromString("replace")
		require.NoError(t, err)
		assert.Equal(t, carrier.ModeReplace, replace)
	})

	t.Run("should reject unknown modes", func(t *testing.T) {
		_, err := carrier.ModeFromString("append")

		require.Error(t, err)
	})
}

func TestNewSelection(t *testing.T) {
	t.Run("should create pending selection", func(t *testing.T) {
		s, err := carrier.NewSelection(0, 3, "dhl")

		require.NoError(t, err)
		require.NoError(t, s.ID().Validate())
		assert.Equal(t, 0, s.LineIndex())
		assert.Equal(t, 3, s.Quantity())
		assert.Equal(t, "dhl", s.CarrierCode())
		assert.Equal(t, carrier.SelectionStatusPending, s.Status())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		_, err := carrier.NewSelection(-1, 0, "")

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s carrier.Selection

		require.ErrorIs(t, s.Validate(), carrier.ErrSelectionIsNotConstructed)
	})
}

func TestLedger_Accounting(t *testing.T) {
	t.Run("empty ledger has nothing claimed", func(t *testing.T) {
		ledger := createTestLedger(t)

		assert.False(t, ledger.HasSelections())
		assert.Equal(t, 0, ledger.ClaimedBy(0))
		assert.Equal(t, 10, ledger.RemainingForLine(0))
	})

	t.Run("remaining is zero for unknown lines", func(t *testing.T) {
		ledger := createTestLedger(t)

		assert.Equal(t, 0, ledger.RemainingForLine(9))
	})

	t.Run("claims sum per line across carriers", func(t *testing.T) {
		first, err := carrier.NewSelection(0, 4, "dhl")
		require.NoError(t, err)
		second, err := carrier.NewSelection(0, 3, "ups")
		require.NoError(t, err)
		ledger := createTestLedger(t, first, second)

		assert.True(t, ledger.HasSelections())
		assert.Equal(t, 7, ledger.ClaimedBy(0))
		assert.Equal(t, 3, ledger.RemainingForLine(0))
	})
}

func TestLedger_SetLineCarriers(t *testing.T) {
	t.Run("should split one line across carriers", func(t *testing.T) {
		ledger := createTestLedger(t)

		selections, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 6, CarrierCode: "dhl"},
			{LineIndex: 0, Quantity: 4, CarrierCode: "ups"},
		}, carrier.ModeMerge)

		require.NoError(t, err)
		require.Len(t, selections, 2)
		assert.Equal(t, 6, selections[0].Quantity())
		assert.Equal(t, "dhl", selections[0].CarrierCode())
		assert.Equal(t, 4, selections[1].Quantity())
		assert.Equal(t, "ups", selections[1].CarrierCode())
		assert.Equal(t, 0, ledger.RemainingForLine(0))
	})

	t.Run("merge combines rows with the same line and carrier", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 4, CarrierCode: "dhl"},
		}, carrier.ModeMerge)
		require.NoError(t, err)

		selections, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 3, CarrierCode: "dhl"},
		}, carrier.ModeMerge)

		require.NoError(t, err)
		require.Len(t, selections, 1)
		assert.Equal(t, 7, selections[0].Quantity())
	})

	t.Run("merge clamps to the remaining quantity", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 8, CarrierCode: "dhl"},
		}, carrier.ModeMerge)
		require.NoError(t, err)

		selections, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 8, CarrierCode: "ups"},
		}, carrier.ModeMerge)

		require.NoError(t, err)
		require.Len(t, selections, 2)
		assert.Equal(t, 2, selections[1].Quantity())
		assert.Equal(t, 10, ledger.ClaimedBy(0))
	})

	t.Run("fully claimed line drops the new claim", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 1, Quantity: 2, CarrierCode: "dhl"},
		}, carrier.ModeMerge)
		require.NoError(t, err)

		selections, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 1, Quantity: 1, CarrierCode: "ups"},
		}, carrier.ModeMerge)

		require.NoError(t, err)
		assert.Len(t, selections, 1)
	})

	t.Run("replace discards prior selections first", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 10, CarrierCode: "dhl"},
		}, carrier.ModeMerge)
		require.NoError(t, err)

		selections, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 5, CarrierCode: "ups"},
		}, carrier.ModeReplace)

		require.NoError(t, err)
		require.Len(t, selections, 1)
		assert.Equal(t, 5, selections[0].Quantity())
		assert.Equal(t, "ups", selections[0].CarrierCode())
		assert.Equal(t, 5, ledger.RemainingForLine(0))
	})

	t.Run("should reject claims for child-role lines", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 2, Quantity: 1, CarrierCode: "dhl"},
		}, carrier.ModeMerge)

		require.ErrorIs(t, err, carrier.ErrLineIsNotClaimable)
	})

	t.Run("should reject claims for unknown lines", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 9, Quantity: 1, CarrierCode: "dhl"},
		}, carrier.ModeMerge)

		require.Error(t, err)
	})

	t.Run("should reject empty carrier code and bad quantity", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 1, CarrierCode: ""},
		}, carrier.ModeMerge)
		require.Error(t, err)

		_, err = ledger.SetLineCarriers([]carrier.LineClaim{
			{LineIndex: 0, Quantity: 0, CarrierCode: "dhl"},
		}, carrier.ModeMerge)
		require.Error(t, err)
	})

	t.Run("should reject unknown mode", func(t *testing.T) {
		ledger := createTestLedger(t)

		_, err := ledger.SetLineCarriers(nil, carrier.ModeUnknown)

		require.Error(t, err)
	})
}
