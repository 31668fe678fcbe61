// Package models holds the request-scoped domain types of the PEP
// declaration pipeline. Everything here is immutable after construction and
// lives no longer than one request; only the user record outlives it, and
// that is owned by the store.
package models

// Declaration is a user's validated politically-exposed-person declaration.
type Declaration struct {
	IsExposed    bool
	ExposedNames []string
}

// Identity is the authenticated user derived from a verified session token.
type Identity struct {
	UniqueID string
}

// DeviceContext describes the device a declaration was submitted from.
type DeviceContext struct {
	DeviceInfo map[string]any
	DeviceID   string
}

// OnboardingStep is the user's per-region position in the onboarding flow.
type OnboardingStep struct {
	StepBR string
	StepUS string
}

// InStep reports whether the US flow is at the expected stage. The BR step is
// carried for logging only; this flow gates on the US side.
func (s OnboardingStep) InStep(expected string) bool {
	return s.StepUS == expected
}

// Record is the durable shape written both to the event log and the user
// store. Built exactly once per successful pipeline run.
type Record struct {
	UniqueID     string         `json:"unique_id"`
	IsExposed    bool           `json:"politically_exposed"`
	ExposedNames []string       `json:"politically_exposed_names"`
	DeviceInfo   map[string]any `json:"device_info,omitempty"`
	DeviceID     string         `json:"device_id,omitempty"`
}

// NewRecord assembles the durable record from the request-scoped parts.
// device may be nil in pipeline variants that do not collect device context.
func NewRecord(identity Identity, decl Declaration, device *DeviceContext) Record {
	rec := Record{
		UniqueID:     identity.UniqueID,
		IsExposed:    decl.IsExposed,
		ExposedNames: decl.ExposedNames,
	}
	if device != nil {
		rec.DeviceInfo = device.DeviceInfo
		rec.DeviceID = device.DeviceID
	}
	return rec
}
