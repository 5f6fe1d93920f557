package http

import (
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/services"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ContentRequest is one per-line allocation row of a draft package. The
// carrier code is optional and only meaningful in carrier-split flows.
type ContentRequest struct {
	LineIndex   int    `json:"line_index"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	CarrierCode string `json:"carrier_code,omitempty"`
}

// PackageRequest is one package of a save draft. ID is empty for new packages.
type PackageRequest struct {
	ID          string           `json:"id,omitempty"`
	BoxType     string           `json:"box_type,omitempty"`
	Length      float64          `json:"length,omitempty"`
	Width       float64          `json:"width,omitempty"`
	Height      float64          `json:"height,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	WeightKg    float64          `json:"weight_kg,omitempty"`
	CarrierCode string           `json:"carrier_code,omitempty"`
	Contents    []ContentRequest `json:"contents"`
}

// SavePackagesRequest is the full replacement draft of an order's package set.
type SavePackagesRequest struct {
	Packages []PackageRequest `json:"packages"`
}

// PreviewPackagesRequest carries the defaults applied to every auto-planned
// package. All fields are optional.
type PreviewPackagesRequest struct {
	BoxType  string  `json:"box_type,omitempty"`
	Length   float64 `json:"length,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}

// AssignCarrierRequest books a carrier for one package.
type AssignCarrierRequest struct {
	CarrierCode string `json:"carrier_code"`
}

// SelectCarrierRequest selects one carrier for the whole order.
type SelectCarrierRequest struct {
	CarrierCode string `json:"carrier_code"`
	Scope       string `json:"scope"`
}

// GenerateLabelsRequest configures a bulk label run.
type GenerateLabelsRequest struct {
	Regenerate bool `json:"regenerate"`
}

// LineClaimRequest is one per-line carrier claim.
type LineClaimRequest struct {
	LineIndex   int    `json:"line_index"`
	Quantity    int    `json:"quantity"`
	CarrierCode string `json:"carrier_code"`
}

// SetLineCarriersRequest applies a batch of per-line carrier claims.
type SetLineCarriersRequest struct {
	Mode   string             `json:"mode"`
	Claims []LineClaimRequest `json:"claims"`
}

// Content is one per-line allocation row of a package.
type Content struct {
	LineIndex   int    `json:"line_index"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	CarrierCode string `json:"carrier_code,omitempty"`
}

// Package is the read model of one package.
type Package struct {
	ID          string    `json:"id,omitempty"`
	CreatorID   string    `json:"creator_id"`
	BoxType     string    `json:"box_type,omitempty"`
	Length      float64   `json:"length,omitempty"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	WeightKg    float64   `json:"weight_kg,omitempty"`
	CarrierCode string    `json:"carrier_code,omitempty"`
	LabelCode   string    `json:"label_code,omitempty"`
	LabelPDFURL string    `json:"label_pdf_url,omitempty"`
	Contents    []Content `json:"contents"`
}

// LineSummary is the allocation summary of one packable order line.
type LineSummary struct {
	LineIndex   int    `json:"line_index"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Ordered     int    `json:"ordered"`
	Allocated   int    `json:"allocated"`
	Remaining   int    `json:"remaining"`
}

// PackagesView is the complete packing view of one order.
type PackagesView struct {
	Packages    []Package     `json:"packages"`
	Lines       []LineSummary `json:"lines"`
	TotalWeight float64       `json:"total_weight"`
}

// PreviewView is the auto-plan draft for the bulk builder.
type PreviewView struct {
	Packages []Package `json:"packages"`
}

// Label is an issued shipping label.
type Label struct {
	Code   string `json:"code"`
	PDFURL string `json:"pdf_url"`
}

// LabelResult is the outcome of one package in a bulk label run.
type LabelResult struct {
	PackageID string `json:"package_id"`
	Outcome   string `json:"outcome"`
	Code      string `json:"code,omitempty"`
	PDFURL    string `json:"pdf_url,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// LabelsView is the per-package report of a bulk label run.
type LabelsView struct {
	Results []LabelResult `json:"results"`
}

// Selection is the read model of one carrier selection.
type Selection struct {
	ID          string `json:"id"`
	LineIndex   int    `json:"line_index"`
	Quantity    int    `json:"quantity"`
	CarrierCode string `json:"carrier_code"`
	Status      string `json:"status"`
}

// LineClaimSummary is the claim accounting of one packable line.
type LineClaimSummary struct {
	LineIndex int    `json:"line_index"`
	SKU       string `json:"sku"`
	Ordered   int    `json:"ordered"`
	Claimed   int    `json:"claimed"`
	Remaining int    `json:"remaining"`
}

// LineCarriersView is the carrier split view of one order.
type LineCarriersView struct {
	Lines      []LineClaimSummary `json:"lines"`
	Selections []Selection        `json:"selections"`
}

// SelectionsView is the selection set resulting from a claims batch.
type SelectionsView struct {
	Selections []Selection `json:"selections"`
}

// DispatchGroup is one carrier's slice of a dispatch plan.
type DispatchGroup struct {
	CarrierCode   string      `json:"carrier_code"`
	TotalQuantity int         `json:"total_quantity"`
	Selections    []Selection `json:"selections"`
}

// DispatchPlanView is a dispatch plan grouped by carrier.
type DispatchPlanView struct {
	Groups []DispatchGroup `json:"groups"`
}

func toPackagesView(response queries.GetPackagesQueryResponse) PackagesView {
	view := PackagesView{
		Packages:    make([]Package, 0, len(response.Packages)),
		Lines:       make([]LineSummary, 0, len(response.Lines)),
		TotalWeight: response.TotalWeight,
	}
	for _, p := range response.Packages {
		view.Packages = append(view.Packages, Package{
			ID:          p.ID.String(),
			CreatorID:   p.CreatorID,
			BoxType:     p.BoxType,
			Length:      p.Length,
			Width:       p.Width,
			Height:      p.Height,
			Unit:        p.Unit,
			WeightKg:    p.WeightKg,
			CarrierCode: p.CarrierCode,
			LabelCode:   p.LabelCode,
			LabelPDFURL: p.LabelPDFURL,
			Contents:    toContents(p.Contents),
		})
	}
	for _, l := range response.Lines {
		view.Lines = append(view.Lines, LineSummary{
			LineIndex:   l.LineIndex,
			SKU:         l.SKU,
			ProductName: l.ProductName,
			Ordered:     l.Ordered,
			Allocated:   l.Allocated,
			Remaining:   l.Remaining,
		})
	}
	return view
}

func toPreviewView(planned []queries.PreviewPackageResponse) PreviewView {
	view := PreviewView{Packages: make([]Package, 0, len(planned))}
	for _, p := range planned {
		view.Packages = append(view.Packages, Package{
			CreatorID:   p.CreatorID,
			BoxType:     p.BoxType,
			Length:      p.Length,
			Width:       p.Width,
			Height:      p.Height,
			Unit:        p.Unit,
			WeightKg:    p.WeightKg,
			CarrierCode: p.CarrierCode,
			Contents:    toContents(p.Contents),
		})
	}
	return view
}

func toContents(contents []queries.ContentResponse) []Content {
	result := make([]Content, 0, len(contents))
	for _, content := range contents {
		result = append(result, Content{
			LineIndex:   content.LineIndex,
			SKU:         content.SKU,
			Quantity:    content.Quantity,
			CarrierCode: content.CarrierCode,
		})
	}
	return result
}

func toLabelsView(results []commands.BulkLabelResult) LabelsView {
	view := LabelsView{Results: make([]LabelResult, 0, len(results))}
	for _, r := range results {
		view.Results = append(view.Results, LabelResult{
			PackageID: r.PackageID.String(),
			Outcome:   r.Outcome,
			Code:      r.Label.Code,
			PDFURL:    r.Label.PDFURL,
			Reason:    r.Reason,
		})
	}
	return view
}

func toLineCarriersView(response queries.GetLineCarriersQueryResponse) LineCarriersView {
	view := LineCarriersView{
		Lines:      make([]LineClaimSummary, 0, len(response.Lines)),
		Selections: make([]Selection, 0, len(response.Selections)),
	}
	for _, l := range response.Lines {
		view.Lines = append(view.Lines, LineClaimSummary{
			LineIndex: l.LineIndex,
			SKU:       l.SKU,
			Ordered:   l.Ordered,
			Claimed:   l.Claimed,
			Remaining: l.Remaining,
		})
	}
	for _, s := range response.Selections {
		view.Selections = append(view.Selections, Selection{
			ID:          s.ID.String(),
			LineIndex:   s.LineIndex,
			Quantity:    s.Quantity,
			CarrierCode: s.CarrierCode,
			Status:      s.Status,
		})
	}
	return view
}

func toSelections(selections []*carrier.Selection) []Selection {
	result := make([]Selection, 0, len(selections))
	for _, s := range selections {
		result = append(result, Selection{
			ID:          s.ID().String(),
			LineIndex:   s.LineIndex(),
			Quantity:    s.Quantity(),
			CarrierCode: s.CarrierCode(),
			Status:      s.Status(),
		})
	}
	return result
}

func toDispatchPlanView(groups []services.DispatchGroup) DispatchPlanView {
	view := DispatchPlanView{Groups: make([]DispatchGroup, 0, len(groups))}
	for _, g := range groups {
		view.Groups = append(view.Groups, DispatchGroup{
			CarrierCode:   g.CarrierCode,
			TotalQuantity: g.TotalQuantity,
			Selections:    toSelections(g.Selections),
		})
	}
	return view
}
