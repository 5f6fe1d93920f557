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

// GetPackagesQueryHandler reads one order's packing view from the database.
// The allocation summary is computed in SQL from the content rows, giving the
// same numbers the domain ledger derives from the aggregate.
type GetPackagesQueryHandler struct {
	db *gorm.DB
}

// NewGetPackagesQueryHandler creates a handler for packing view queries.
// Requires a GORM database connection for query execution.
func NewGetPackagesQueryHandler(db *gorm.DB) GetPackagesQueryHandler {
	return GetPackagesQueryHandler{db: db}
}

// Handle executes the query and returns the order's packing view.
// Bundle-child lines are excluded from the summary: they are not addressable
// for packing.
func (h GetPackagesQueryHandler) Handle(
	ctx context.Context,
	query GetPackagesQuery,
) (GetPackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackagesQueryResponse{}, err
	}

	orderID, err := h.resolveOrderID(ctx, query.OrderNumber())
	if err != nil {
		return GetPackagesQueryResponse{}, err
	}

	response := GetPackagesQueryResponse{}
	if response.Lines, err = h.lineSummary(ctx, orderID); err != nil {
		return GetPackagesQueryResponse{}, err
	}
	if response.Packages, err = h.packages(ctx, orderID); err != nil {
		return GetPackagesQueryResponse{}, err
	}

	for _, p := range response.Packages {
		response.TotalWeight += p.WeightKg
	}
	return response, nil
}

func (h GetPackagesQueryHandler) resolveOrderID(ctx context.Context, number string) (uuid.UUID, error) {
	var id uuid.UUID
	row := h.db.WithContext(ctx).Raw(`
		SELECT id FROM orders WHERE number = ?
	`, number).Row()
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return uuid.UUID{}, errs.NewObjectNotFoundError("orderNumber", number)
		}
		return uuid.UUID{}, err
	}
	return id, nil
}

func (h GetPackagesQueryHandler) lineSummary(
	ctx context.Context,
	orderID uuid.UUID,
) ([]LineSummaryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.line_index,
			l.sku,
			l.product_name,
			l.quantity,
			COALESCE(SUM(c.quantity), 0) AS allocated
		FROM order_lines l
		LEFT JOIN packages p ON p.order_id = l.order_id
		LEFT JOIN package_contents c ON c.package_id = p.id AND c.line_index = l.line_index
		WHERE l.order_id = ? AND l.role != ?
		GROUP BY l.line_index, l.sku, l.product_name, l.quantity
		ORDER BY l.line_index
	`, orderID, order.RoleChild.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]LineSummaryResponse, 0)
	for rows.Next() {
		var line LineSummaryResponse
		if err = rows.Scan(
			&line.LineIndex,
			&line.SKU,
			&line.ProductName,
			&line.Ordered,
			&line.Allocated,
		); err != nil {
			return nil, err
		}

		line.Remaining = line.Ordered - line.Allocated
		if line.Remaining < 0 {
			line.Remaining = 0
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (h GetPackagesQueryHandler) packages(
	ctx context.Context,
	orderID uuid.UUID,
) ([]PackageResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			creator_id,
			box_type,
			length,
			width,
			height,
			unit,
			weight_kg,
			carrier_code,
			label_code,
			label_pdf_url
		FROM packages
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]PackageResponse, 0)
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var pkg PackageResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&pkg.CreatorID,
			&pkg.BoxType,
			&pkg.Length,
			&pkg.Width,
			&pkg.Height,
			&pkg.Unit,
			&pkg.WeightKg,
			&pkg.CarrierCode,
			&pkg.LabelCode,
			&pkg.LabelPDFURL,
		); err != nil {
			return nil, err
		}

		pkgID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		pkg.ID = pkgID

		byID[id] = len(packages)
		packages = append(packages, pkg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, h.attachContents(ctx, orderID, packages, byID)
}

func (h GetPackagesQueryHandler) attachContents(
	ctx context.Context,
	orderID uuid.UUID,
	packages []PackageResponse,
	byID map[uuid.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.package_id,
			c.line_index,
			c.sku,
			c.quantity,
			c.carrier_code
		FROM package_contents c
		JOIN packages p ON p.id = c.package_id
		WHERE p.order_id = ?
		ORDER BY c.package_id, c.line_index
	`, orderID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var packageID uuid.UUID
		var content ContentResponse

		if err = rows.Scan(
			&packageID,
			&content.LineIndex,
			&content.SKU,
			&content.Quantity,
			&content.CarrierCode,
		); err != nil {
			return err
		}

		if index, ok := byID[packageID]; ok {
			packages[index].Contents = append(packages[index].Contents, content)
		}
	}
	return rows.Err()
}
