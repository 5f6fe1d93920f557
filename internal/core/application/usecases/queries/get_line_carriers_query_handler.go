package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLineCarriersQueryHandler reads one order's carrier split view from the
// database.
type GetLineCarriersQueryHandler struct {
	db *gorm.DB
}

// NewGetLineCarriersQueryHandler creates a handler for carrier split queries.
// Requires a GORM database connection for query execution.
func NewGetLineCarriersQueryHandler(db *gorm.DB) GetLineCarriersQueryHandler {
	return GetLineCarriersQueryHandler{db: db}
}

// Handle executes the query and returns the order's carrier split view.
// Bundle-child lines are excluded: they are not addressable for claims.
func (h GetLineCarriersQueryHandler) Handle(
	ctx context.Context,
	query GetLineCarriersQuery,
) (GetLineCarriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLineCarriersQueryResponse{}, err
	}

	var orderID uuid.UUID
	row := h.db.WithContext(ctx).Raw(`
		SELECT id FROM orders WHERE number = ?
	`, query.OrderNumber()).Row()
	if err := row.Scan(&orderID); err != nil {
		if err == sql.ErrNoRows {
			return GetLineCarriersQueryResponse{}, errs.NewObjectNotFoundError(
				"orderNumber", query.OrderNumber())
		}
		return GetLineCarriersQueryResponse{}, err
	}

	response := GetLineCarriersQueryResponse{}
	var err error
	if response.Lines, err = h.lineClaims(ctx, orderID); err != nil {
		return GetLineCarriersQueryResponse{}, err
	}
	if response.Selections, err = h.selections(ctx, orderID); err != nil {
		return GetLineCarriersQueryResponse{}, err
	}
	return response, nil
}

func (h GetLineCarriersQueryHandler) lineClaims(
	ctx context.Context,
	orderID uuid.UUID,
) ([]LineClaimSummaryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.line_index,
			l.sku,
			l.quantity,
			COALESCE(SUM(s.quantity), 0) AS claimed
		FROM order_lines l
		LEFT JOIN carrier_selections s ON s.order_id = l.order_id AND s.line_index = l.line_index
		WHERE l.order_id = ? AND l.role != ?
		GROUP BY l.line_index, l.sku, l.quantity
		ORDER BY l.line_index
	`, orderID, order.RoleChild.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]LineClaimSummaryResponse, 0)
	for rows.Next() {
		var line LineClaimSummaryResponse
		if err = rows.Scan(
			&line.LineIndex,
			&line.SKU,
			&line.Ordered,
			&line.Claimed,
		); err != nil {
			return nil, err
		}

		line.Remaining = line.Ordered - line.Claimed
		if line.Remaining < 0 {
			line.Remaining = 0
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (h GetLineCarriersQueryHandler) selections(
	ctx context.Context,
	orderID uuid.UUID,
) ([]SelectionResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			line_index,
			quantity,
			carrier_code,
			status
		FROM carrier_selections
		WHERE order_id = ?
		ORDER BY line_index, carrier_code
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := make([]SelectionResponse, 0)
	for rows.Next() {
		var selection SelectionResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&selection.LineIndex,
			&selection.Quantity,
			&selection.CarrierCode,
			&selection.Status,
		); err != nil {
			return nil, err
		}

		selectionID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		selection.ID = selectionID
		selections = append(selections, selection)
	}
	return selections, rows.Err()
}
