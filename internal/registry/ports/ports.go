// Package ports defines the interfaces shared across the registry services.
// Interfaces live here when consumed by more than one service to avoid
// duplication.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"

	"custos/internal/registry/models"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
	"custos/pkg/platform/audit"
)

// VerifierOracle is the capability exposed by a pluggable identity provider.
// Oracles are external and untrusted; callers must treat every response as
// advisory until cross-checked against registry state.
type VerifierOracle interface {
	// GetID returns the member identity the oracle attests for the address,
	// or the nil ID when the oracle does not know it.
	GetID(ctx context.Context, addr id.Address) (id.MemberID, error)

	// GetMember returns permission, rating, and country for one address.
	GetMember(ctx context.Context, addr id.Address) (*models.MemberFacts, error)

	// GetMembers returns facts for two addresses in a single lookup, used
	// when both participants resolve through the same verifier.
	GetMembers(ctx context.Context, a, b id.Address) (*models.MemberFacts, *models.MemberFacts, error)
}

// OracleDialer turns a verifier entry key into a usable oracle client.
type OracleDialer interface {
	Dial(key string) (VerifierOracle, error)
}

// MemberStore persists member accounts, the address→identity memo table, and
// notarized document hashes.
type MemberStore interface {
	// Get returns the account for a member ID, or nil when absent.
	Get(ctx context.Context, memberID id.MemberID) (*models.MemberAccount, error)

	// Put creates or replaces an account.
	Put(ctx context.Context, account *models.MemberAccount) error

	// IDForAddress returns the memoized identity for an address, or the nil
	// ID when the address has never resolved.
	IDForAddress(ctx context.Context, addr id.Address) (id.MemberID, error)

	// MapAddress memoizes an address→identity resolution.
	MapAddress(ctx context.Context, addr id.Address, memberID id.MemberID) error

	// DocumentHash returns the notarized hash for a member, zero when unset.
	DocumentHash(ctx context.Context, memberID id.MemberID) ([32]byte, error)

	// SetDocumentHash stores a notarized hash for a member.
	SetDocumentHash(ctx context.Context, memberID id.MemberID, hash [32]byte) error
}

// CountryStore persists per-country records and the global limit table.
type CountryStore interface {
	// Get returns the record for a country code. Absent countries yield the
	// zero record (not permitted, zero limits), created implicitly on first
	// write.
	Get(ctx context.Context, code id.CountryCode) (*models.CountryRecord, error)

	// Put creates or replaces a country record.
	Put(ctx context.Context, record *models.CountryRecord) error

	// List returns every country record ever written.
	List(ctx context.Context) ([]*models.CountryRecord, error)

	// Global returns the global limit table.
	Global(ctx context.Context) (*models.LimitTable, error)

	// PutGlobal replaces the global limit table.
	PutGlobal(ctx context.Context, table *models.LimitTable) error
}

// VerifierRef is one dialed slot of the ordered verifier list.
type VerifierRef struct {
	// Index is the slot in the verifier list; never 0, which is the
	// reserved "no verifier" sentinel.
	Index  int
	Entry  models.VerifierEntry
	Oracle VerifierOracle
}

// VerifierDirectory exposes the ordered verifier list with dialed oracles.
type VerifierDirectory interface {
	// Verifiers returns the list in registration order, sentinel excluded.
	Verifiers() []VerifierRef

	// Verifier returns the slot at index, false when the slot is unset or
	// the sentinel.
	Verifier(index int) (VerifierRef, bool)
}

// AuthorityDirectory exposes the organization identity and its sub-authority
// grants.
type AuthorityDirectory interface {
	OrgID() id.MemberID
	OrgAddress() id.Address

	// Grant returns the sub-authority grant for an address, false when the
	// address is not a registered sub-authority.
	Grant(addr id.Address) (*models.AuthorityGrant, bool)

	// IsAuthorityID reports whether a member ID collides with the
	// organization or a registered sub-authority identity.
	IsAuthorityID(memberID id.MemberID) bool
}

// ShareDirectory exposes the registered share ledgers and the global lock.
type ShareDirectory interface {
	Share(addr id.Address) models.ShareEntry
	GlobalLock() bool
}

// Authorizer is the external multi-party authorization gate consulted before
// admin state mutates. How approval is collected is not this core's concern.
type Authorizer interface {
	IsAuthorized(ctx context.Context) bool
}

// Governance is the optional external collaborator approving share
// registration and authorized-supply changes.
type Governance interface {
	ApproveOrgShare(ctx context.Context, addr id.Address) (bool, error)
	ApproveAuthorizedSupply(ctx context.Context, newValue uint64) (bool, error)
}

// AuditPublisher emits audit events for security-relevant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LogAudit writes the event to the structured logger and, when a publisher is
// configured, emits it. Publisher failures are logged, never propagated: the
// operation already happened.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.Event) {
	if logger != nil {
		logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"actor", event.Actor,
			"subject", event.Subject,
		)
	}
	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

// MemberFactsFor fetches permission/rating/country for one participant. A
// participant with no verifier affinity (organization or custodian) is always
// permitted with rating 0 and no country.
func MemberFactsFor(ctx context.Context, dir VerifierDirectory, affinity int, addr id.Address) (*models.MemberFacts, error) {
	if affinity == 0 {
		return &models.MemberFacts{Permitted: true}, nil
	}
	ref, ok := dir.Verifier(affinity)
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeInternal, "verifier slot %d is not configured", affinity)
	}
	facts, err := ref.Oracle.GetMember(ctx, addr)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "verifier lookup failed")
	}
	return facts, nil
}

// MemberFactsPair fetches facts for two participants, using one joint lookup
// when both resolve through the same verifier.
func MemberFactsPair(ctx context.Context, dir VerifierDirectory, affinityA, affinityB int, addrA, addrB id.Address) (*models.MemberFacts, *models.MemberFacts, error) {
	if affinityA != 0 && affinityA == affinityB {
		ref, ok := dir.Verifier(affinityA)
		if !ok {
			return nil, nil, pkgerrors.Newf(pkgerrors.CodeInternal, "verifier slot %d is not configured", affinityA)
		}
		factsA, factsB, err := ref.Oracle.GetMembers(ctx, addrA, addrB)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "joint verifier lookup failed")
		}
		return factsA, factsB, nil
	}
	factsA, err := MemberFactsFor(ctx, dir, affinityA, addrA)
	if err != nil {
		return nil, nil, err
	}
	factsB, err := MemberFactsFor(ctx, dir, affinityB, addrB)
	if err != nil {
		return nil, nil, err
	}
	return factsA, factsB, nil
}
