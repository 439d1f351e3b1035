// Package audit defines the event model emitted from registry logic. Keep it
// transport-agnostic so sinks (kafka, structured logs) can fan out.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event captures one security-relevant registry action.
type Event struct {
	ID        string
	Timestamp time.Time
	Action    string
	// Actor is the address or component that performed the action.
	Actor string
	// Subject is the member, country, or ledger the action applied to.
	Subject string
	Fields  map[string]any
}

// NewEvent stamps an event with an ID and the current time.
func NewEvent(action, actor, subject string, fields map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Actor:     actor,
		Subject:   subject,
		Fields:    fields,
	}
}

// Actions emitted by the registry core.
const (
	ActionTransferApplied   = "transfer_applied"
	ActionSupplyChanged     = "supply_changed"
	ActionCountrySet        = "country_set"
	ActionLimitsSet         = "member_limits_set"
	ActionVerifierSet       = "verifier_set"
	ActionRestrictionSet    = "restriction_set"
	ActionGlobalLockSet     = "global_lock_set"
	ActionCustodianAdded    = "custodian_added"
	ActionShareAdded        = "share_added"
	ActionModuleAttached    = "module_attached"
	ActionModuleDetached    = "module_detached"
	ActionAuthorityGranted  = "authority_granted"
	ActionDocumentNotarized = "document_notarized"
)
