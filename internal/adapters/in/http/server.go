// Package http exposes the packing and carrier-split operations over an echo
// REST surface. The acting user comes from the X-User-Id header; actual
// authentication is handled upstream.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	savePackagesHandler         commands.SavePackagesCommandHandler
	assignPackageCarrierHandler commands.AssignPackageCarrierCommandHandler
	generateLabelHandler        commands.GenerateLabelCommandHandler
	generateLabelsHandler       commands.GenerateLabelsCommandHandler
	selectOrderCarrierHandler   commands.SelectOrderCarrierCommandHandler
	setLineCarriersHandler      commands.SetLineCarriersCommandHandler
	createDispatchPlanHandler   commands.CreateDispatchPlanCommandHandler

	// Query handlers
	getPackagesHandler     queries.GetPackagesQueryHandler
	previewPackagesHandler queries.PreviewPackagesQueryHandler
	getLineCarriersHandler queries.GetLineCarriersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	savePackagesHandler commands.SavePackagesCommandHandler,
	assignPackageCarrierHandler commands.AssignPackageCarrierCommandHandler,
	generateLabelHandler commands.GenerateLabelCommandHandler,
	generateLabelsHandler commands.GenerateLabelsCommandHandler,
	selectOrderCarrierHandler commands.SelectOrderCarrierCommandHandler,
	setLineCarriersHandler commands.SetLineCarriersCommandHandler,
	createDispatchPlanHandler commands.CreateDispatchPlanCommandHandler,
	getPackagesHandler queries.GetPackagesQueryHandler,
	previewPackagesHandler queries.PreviewPackagesQueryHandler,
	getLineCarriersHandler queries.GetLineCarriersQueryHandler,
) *Server {
	return &Server{
		savePackagesHandler:         savePackagesHandler,
		assignPackageCarrierHandler: assignPackageCarrierHandler,
		generateLabelHandler:        generateLabelHandler,
		generateLabelsHandler:       generateLabelsHandler,
		selectOrderCarrierHandler:   selectOrderCarrierHandler,
		setLineCarriersHandler:      setLineCarriersHandler,
		createDispatchPlanHandler:   createDispatchPlanHandler,
		getPackagesHandler:          getPackagesHandler,
		previewPackagesHandler:      previewPackagesHandler,
		getLineCarriersHandler:      getLineCarriersHandler,
	}
}

// RegisterRoutes mounts every API route under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/orders/:orderNo/packages", s.GetPackages)
	v1.POST("/orders/:orderNo/packages/preview", s.PreviewPackages)
	v1.POST("/orders/:orderNo/packages", s.SavePackages)
	v1.PATCH("/orders/:orderNo/packages/:id/carrier", s.AssignPackageCarrier)
	v1.POST("/orders/:orderNo/packages/:id/label", s.GenerateLabel)
	v1.POST("/orders/:orderNo/packages/labels", s.GenerateLabels)
	v1.POST("/orders/:orderNo/packages/select-carrier", s.SelectOrderCarrier)
	v1.GET("/orders/:orderNo/line-carriers", s.GetLineCarriers)
	v1.POST("/orders/:orderNo/line-carriers", s.SetLineCarriers)
	v1.POST("/orders/:orderNo/dispatch-plan/preview", s.PreviewDispatchPlan)
	v1.POST("/orders/:orderNo/dispatch-plan", s.CreateDispatchPlan)
}

// GetPackages handles GET /api/v1/orders/:orderNo/packages.
func (s *Server) GetPackages(ctx echo.Context) error {
	query, err := queries.NewGetPackagesQuery(ctx.Param("orderNo"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	view, err := s.getPackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPackagesView(view))
}

// PreviewPackages handles POST /api/v1/orders/:orderNo/packages/preview.
// The returned draft is never persisted.
func (s *Server) PreviewPackages(ctx echo.Context) error {
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var request PreviewPackagesRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	defaults := services.PlanDefaults{
		BoxType:  request.BoxType,
		WeightKg: request.WeightKg,
	}
	if request.Length > 0 || request.Width > 0 || request.Height > 0 {
		dims, dimsErr := kernel.NewDimensions(
			request.Length, request.Width, request.Height, kernel.Unit(request.Unit))
		if dimsErr != nil {
			return errorJSON(ctx, dimsErr)
		}
		defaults.Dims = dims
	}

	query, err := queries.NewPreviewPackagesQuery(ctx.Param("orderNo"), actorID, defaults)
	if err != nil {
		return errorJSON(ctx, err)
	}

	planned, err := s.previewPackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPreviewView(planned))
}

// SavePackages handles POST /api/v1/orders/:orderNo/packages: the submitted
// draft replaces the order's package set after the domain merge.
func (s *Server) SavePackages(ctx echo.Context) error {
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var request SavePackagesRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	draft, err := draftFromRequest(request, actorID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewSavePackagesCommand(ctx.Param("orderNo"), actorID, draft)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.savePackagesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignPackageCarrier handles PATCH /api/v1/orders/:orderNo/packages/:id/carrier.
func (s *Server) AssignPackageCarrier(ctx echo.Context) error {
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var request AssignCarrierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignPackageCarrierCommand(
		ctx.Param("orderNo"), packageID, request.CarrierCode, actorID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.assignPackageCarrierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateLabel handles POST /api/v1/orders/:orderNo/packages/:id/label.
func (s *Server) GenerateLabel(ctx echo.Context) error {
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewGenerateLabelCommand(ctx.Param("orderNo"), packageID, actorID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	label, err := s.generateLabelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Label{Code: label.Code, PDFURL: label.PDFURL})
}

// GenerateLabels handles POST /api/v1/orders/:orderNo/packages/labels: a bulk
// run over every package of the order.
func (s *Server) GenerateLabels(ctx echo.Context) error {
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var request GenerateLabelsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewGenerateLabelsCommand(ctx.Param("orderNo"), actorID, request.Regenerate)
	if err != nil {
		return errorJSON(ctx, err)
	}

	results, err := s.generateLabelsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLabelsView(results))
}

// SelectOrderCarrier handles POST /api/v1/orders/:orderNo/packages/select-carrier.
func (s *Server) SelectOrderCarrier(ctx echo.Context) error {
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var request SelectCarrierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	scope, err := commands.SelectScopeFromString(request.Scope)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewSelectOrderCarrierCommand(
		ctx.Param("orderNo"), request.CarrierCode, actorID, scope)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.selectOrderCarrierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLineCarriers handles GET /api/v1/orders/:orderNo/line-carriers.
func (s *Server) GetLineCarriers(ctx echo.Context) error {
	query, err := queries.NewGetLineCarriersQuery(ctx.Param("orderNo"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	view, err := s.getLineCarriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLineCarriersView(view))
}

// SetLineCarriers handles POST /api/v1/orders/:orderNo/line-carriers: applies
// a batch of per-line carrier claims under merge or replace mode.
func (s *Server) SetLineCarriers(ctx echo.Context) error {
	var request SetLineCarriersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	mode, err := carrier.ModeFromString(request.Mode)
	if err != nil {
		return errorJSON(ctx, err)
	}

	claims := make([]carrier.LineClaim, 0, len(request.Claims))
	for _, claim := range request.Claims {
		claims = append(claims, carrier.LineClaim{
			LineIndex:   claim.LineIndex,
			Quantity:    claim.Quantity,
			CarrierCode: claim.CarrierCode,
		})
	}

	cmd, err := commands.NewSetLineCarriersCommand(ctx.Param("orderNo"), claims, mode)
	if err != nil {
		return errorJSON(ctx, err)
	}

	selections, err := s.setLineCarriersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SelectionsView{Selections: toSelections(selections)})
}

// PreviewDispatchPlan handles POST /api/v1/orders/:orderNo/dispatch-plan/preview.
func (s *Server) PreviewDispatchPlan(ctx echo.Context) error {
	return s.dispatchPlan(ctx, true)
}

// CreateDispatchPlan handles POST /api/v1/orders/:orderNo/dispatch-plan.
func (s *Server) CreateDispatchPlan(ctx echo.Context) error {
	return s.dispatchPlan(ctx, false)
}

func (s *Server) dispatchPlan(ctx echo.Context, preview bool) error {
	cmd, err := commands.NewCreateDispatchPlanCommand(ctx.Param("orderNo"), preview)
	if err != nil {
		return errorJSON(ctx, err)
	}

	groups, err := s.createDispatchPlanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDispatchPlanView(groups))
}

// draftFromRequest converts the submitted package list into domain drafts.
// Entries carrying an id refer to persisted packages; reconciliation with
// packages locked by other users happens in the domain merge.
func draftFromRequest(request SavePackagesRequest, actorID string) ([]*packing.Package, error) {
	draft := make([]*packing.Package, 0, len(request.Packages))
	for _, p := range request.Packages {
		contents := make([]packing.Content, 0, len(p.Contents))
		for _, c := range p.Contents {
			content, err := packing.NewContent(c.LineIndex, c.SKU, c.Quantity, c.CarrierCode)
			if err != nil {
				return nil, err
			}
			contents = append(contents, content)
		}

		var dims kernel.Dimensions
		if p.Length > 0 || p.Width > 0 || p.Height > 0 {
			var err error
			dims, err = kernel.NewDimensions(p.Length, p.Width, p.Height, kernel.Unit(p.Unit))
			if err != nil {
				return nil, err
			}
		}

		var pkg *packing.Package
		var err error
		if p.ID == "" {
			pkg, err = packing.NewDraftPackage(
				actorID, p.BoxType, dims, p.WeightKg, p.CarrierCode, contents)
		} else {
			var id kernel.UUID
			id, err = kernel.UUIDFromString(p.ID)
			if err != nil {
				return nil, err
			}
			pkg, err = packing.RestorePackage(
				id, actorID, p.BoxType, dims, p.WeightKg, p.CarrierCode, contents)
		}
		if err != nil {
			return nil, err
		}
		draft = append(draft, pkg)
	}
	return draft, nil
}

// actorFromHeader extracts the acting user from the X-User-Id header.
func actorFromHeader(ctx echo.Context) (string, error) {
	id := ctx.Request().Header.Get("X-User-Id")
	if id == "" {
		return "", errs.NewValueIsRequiredError("X-User-Id header is required")
	}
	return id, nil
}

// errorJSON writes the uniform error body with the status the error maps to.
func errorJSON(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// statusFor maps domain and application errors onto HTTP statuses. Validation
// failures are the caller's fault; ownership and state conflicts are conflicts;
// anything unrecognized stays internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, packing.ErrPackageLocked):
		return http.StatusConflict
	case errors.Is(err, services.ErrSplitModeActive),
		errors.Is(err, services.ErrOrderNotLabelable),
		errors.Is(err, services.ErrNoPendingSelections):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, packing.ErrLineIsNotPackable),
		errors.Is(err, carrier.ErrLineIsNotClaimable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
