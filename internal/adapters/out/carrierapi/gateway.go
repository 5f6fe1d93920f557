// Package carrierapi provides the HTTP adapter for the external carrier
// aggregation API: label issuance and shipment tracking lookups. Calls happen
// outside the engine's transaction boundary.
package carrierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// labelRequest is the issuance payload sent to the carrier API.
type labelRequest struct {
	OrderNumber string         `json:"order_number"`
	CarrierCode string         `json:"carrier_code"`
	BoxType     string         `json:"box_type"`
	Length      float64        `json:"length"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Unit        string         `json:"unit"`
	WeightKg    float64        `json:"weight_kg"`
	Items       []labelItemDTO `json:"items"`
}

// labelItemDTO is one packed line in the issuance payload.
type labelItemDTO struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// labelResponse is the carrier API's issuance response.
type labelResponse struct {
	TrackingCode string `json:"tracking_code"`
	LabelPDFURL  string `json:"label_pdf_url"`
}

// trackingResponse is the carrier API's tracking lookup response.
type trackingResponse struct {
	State string `json:"state"`
}

// Gateway provides HTTP access to the carrier aggregation API.
type Gateway struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// NewGateway creates a carrier API gateway for the given base URL.
func NewGateway(apiURL, apiKey string) *Gateway {
	return &Gateway{
		URL:    strings.TrimSuffix(apiURL, "/"),
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IssueLabel requests a shipping label for one package of an order.
func (g *Gateway) IssueLabel(
	ctx context.Context,
	orderNumber, carrierCode string,
	pkg *packing.Package,
) (ports.Label, error) {
	if err := pkg.Validate(); err != nil {
		return ports.Label{}, err
	}

	items := make([]labelItemDTO, 0, len(pkg.Contents()))
	for _, content := range pkg.Contents() {
		items = append(items, labelItemDTO{
			SKU:      content.SKU(),
			Quantity: content.Quantity(),
		})
	}

	dims := pkg.InnerDimensions()
	payload, err := json.Marshal(labelRequest{
		OrderNumber: orderNumber,
		CarrierCode: carrierCode,
		BoxType:     pkg.BoxType(),
		Length:      dims.Length(),
		Width:       dims.Width(),
		Height:      dims.Height(),
		Unit:        string(dims.Unit()),
		WeightKg:    pkg.WeightKg(),
		Items:       items,
	})
	if err != nil {
		return ports.Label{}, err
	}

	apiURL := fmt.Sprintf("%s/v1/labels", g.URL)
	body, err := g.doRequest(ctx, http.MethodPost, apiURL, payload)
	if err != nil {
		return ports.Label{}, fmt.Errorf("issue label for %s: %w", orderNumber, err)
	}

	var result labelResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return ports.Label{}, fmt.Errorf("parse label response: %w", err)
	}
	if result.TrackingCode == "" {
		return ports.Label{}, errs.NewValueIsRequiredError("carrier returned no tracking code")
	}

	return ports.Label{
		PDFURL: result.LabelPDFURL,
		Code:   result.TrackingCode,
	}, nil
}

// TrackShipment returns the fulfillment status the carrier currently reports
// for the order's shipment.
func (g *Gateway) TrackShipment(ctx context.Context, orderNumber, carrierCode string) (order.Status, error) {
	apiURL := fmt.Sprintf("%s/v1/tracking/%s?carrier=%s",
		g.URL, url.PathEscape(orderNumber), url.QueryEscape(carrierCode))

	body, err := g.doRequest(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return order.Unknown, fmt.Errorf("track shipment %s: %w", orderNumber, err)
	}

	var result trackingResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return order.Unknown, fmt.Errorf("parse tracking response: %w", err)
	}

	return statusFromTrackingState(result.State)
}

// statusFromTrackingState maps the carrier's wire states onto the order status
// machine.
func statusFromTrackingState(state string) (order.Status, error) {
	switch state {
	case "awaiting_pickup":
		return order.AwaitingPickup, nil
	case "in_transit":
		return order.InTransit, nil
	case "out_for_delivery":
		return order.OutForDelivery, nil
	case "delivered":
		return order.Delivered, nil
	case "delivery_failed":
		return order.DeliveryFailed, nil
	case "returned":
		return order.Returned, nil
	default:
		return order.Unknown, errs.NewValueIsInvalidErrorWithCause(
			"tracking state is invalid",
			fmt.Errorf("%q is not a known tracking state", state),
		)
	}
}

func (g *Gateway) doRequest(ctx context.Context, method, apiURL string, body []byte) ([]byte, error) {
	if g.URL == "" {
		return nil, fmt.Errorf("carrier API URL not configured")
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("carrier API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}
