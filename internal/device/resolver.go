// Package device resolves the opaque X-Device-Info header into a device
// context via the device service. Device resolution is independent of the
// business payload: it only identifies where the declaration came from.
package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mssola/useragent"

	"pepgate/internal/pep/models"
	dErrors "pepgate/pkg/domain-errors"
)

// Resolver turns a device-info header into a DeviceContext.
type Resolver interface {
	Resolve(ctx context.Context, headerValue, rawUserAgent string) (*models.DeviceContext, error)
}

// HTTPResolver calls the device service over HTTP.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPResolver(baseURL string, client *http.Client, logger *slog.Logger) *HTTPResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPResolver{baseURL: baseURL, client: client, logger: logger}
}

type resolveRequest struct {
	Fingerprint string `json:"fingerprint"`
	Platform    string `json:"platform,omitempty"`
	OS          string `json:"os,omitempty"`
	Browser     string `json:"browser,omitempty"`
	Mobile      bool   `json:"mobile"`
}

type resolveResponse struct {
	DeviceInfo map[string]any `json:"device_info"`
	DeviceID   string         `json:"device_id"`
}

// Resolve exchanges the header fingerprint for a device context. The raw
// User-Agent is parsed and forwarded as enrichment so the device service can
// label sessions without re-parsing.
//
// Two distinct failures: an absent/empty header is the caller's fault
// (CodeDeviceNotSupplied); anything that goes wrong with the lookup itself is
// CodeDeviceRequestFailed.
func (r *HTTPResolver) Resolve(ctx context.Context, headerValue, rawUserAgent string) (*models.DeviceContext, error) {
	if headerValue == "" {
		return nil, dErrors.New(dErrors.CodeDeviceNotSupplied, "device info not supplied")
	}

	payload := resolveRequest{Fingerprint: headerValue}
	if rawUserAgent != "" {
		ua := useragent.New(rawUserAgent)
		browser, _ := ua.Browser()
		payload.Platform = ua.Platform()
		payload.OS = ua.OS()
		payload.Browser = browser
		payload.Mobile = ua.Mobile()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDeviceRequestFailed, "encode device lookup", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/device-info", bytes.NewReader(body))
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDeviceRequestFailed, "build device lookup request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "device service unreachable", "error", err)
		return nil, dErrors.Wrap(dErrors.CodeDeviceRequestFailed, "device info lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "device service returned error", "status", resp.StatusCode)
		return nil, dErrors.New(dErrors.CodeDeviceRequestFailed,
			fmt.Sprintf("device info lookup failed with status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDeviceRequestFailed, "read device lookup response", err)
	}
	var decoded resolveResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeDeviceRequestFailed, "decode device lookup response", err)
	}

	return &models.DeviceContext{DeviceInfo: decoded.DeviceInfo, DeviceID: decoded.DeviceID}, nil
}
