// Package service is the registry facade: it owns the admin state (verifier
// list, share ledgers, sub-authority grants, global lock), wires the
// resolver, checker, and accountant together, and serializes every external
// entry point so each transfer or supply change runs to completion with
// all-or-nothing semantics.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"custos/internal/registry/compliance"
	"custos/internal/registry/counts"
	"custos/internal/registry/identity"
	"custos/internal/registry/metrics"
	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
	"custos/pkg/platform/audit"
)

// Service is the compliance registry core.
type Service struct {
	// opMu serializes external entry points; no predicate check and its
	// count mutation are ever separated by another operation.
	opMu sync.Mutex
	// stateMu guards the admin state below; the directories the resolver
	// and checker consume read through it.
	stateMu sync.RWMutex

	members    ports.MemberStore
	countries  ports.CountryStore
	dialer     ports.OracleDialer
	authorizer ports.Authorizer
	governance ports.Governance
	auditPub   ports.AuditPublisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	clock      func() time.Time

	resolver   *identity.Resolver
	checker    *compliance.Checker
	accountant *counts.Accountant

	orgAddress id.Address
	orgID      id.MemberID
	// verifiers[0] is the reserved "no verifier" sentinel and never dials.
	verifiers   []models.VerifierEntry
	oracles     []ports.VerifierOracle
	shares      map[id.Address]models.ShareEntry
	authorities map[id.Address]models.AuthorityGrant
	modules     map[id.Address]bool
	globalLock  bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPub = publisher
	}
}

func WithGovernance(governance ports.Governance) Option {
	return func(s *Service) {
		s.governance = governance
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the ambient clock for sub-authority windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.clock = now
	}
}

func New(
	members ports.MemberStore,
	countries ports.CountryStore,
	dialer ports.OracleDialer,
	authorizer ports.Authorizer,
	orgAddress id.Address,
	opts ...Option,
) (*Service, error) {
	if members == nil || countries == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "member and country stores are required")
	}
	if dialer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "oracle dialer is required")
	}
	if authorizer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "authorizer is required")
	}
	if orgAddress.IsNil() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "organization address is required")
	}

	s := &Service{
		members:     members,
		countries:   countries,
		dialer:      dialer,
		authorizer:  authorizer,
		clock:       time.Now,
		orgAddress:  orgAddress,
		orgID:       id.DeriveMemberID(orgAddress),
		verifiers:   []models.VerifierEntry{{}},
		oracles:     []ports.VerifierOracle{nil},
		shares:      make(map[id.Address]models.ShareEntry),
		authorities: make(map[id.Address]models.AuthorityGrant),
		modules:     make(map[id.Address]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.seedOrganization(context.Background()); err != nil {
		return nil, err
	}

	var err error
	s.resolver, err = identity.New(members, s, s, identity.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.checker, err = compliance.New(s.resolver, members, countries, s, s, s,
		compliance.WithLogger(s.logger), compliance.WithClock(s.clock))
	if err != nil {
		return nil, err
	}
	s.accountant, err = counts.New(s.resolver, members, countries, s, s,
		counts.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// seedOrganization ensures the organization's own account and address memo
// exist; a restarted service over a durable store must not recreate them.
func (s *Service) seedOrganization(ctx context.Context) error {
	account, err := s.members.Get(ctx, s.orgID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load organization account")
	}
	if account != nil {
		return nil
	}
	if err := s.members.Put(ctx, &models.MemberAccount{ID: s.orgID, Exists: true}); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "create organization account")
	}
	if err := s.members.MapAddress(ctx, s.orgAddress, s.orgID); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "memoize organization address")
	}
	return nil
}

// CheckTransfer evaluates compliance for a proposed transfer without
// mutating any state. Callable by any registered share ledger.
func (s *Service) CheckTransfer(ctx context.Context, caller, authority, from, to id.Address, senderZeroesOut bool) (*models.ComplianceResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.check(ctx, caller, authority, from, to, senderZeroesOut)
}

func (s *Service) check(ctx context.Context, caller, authority, from, to id.Address, senderZeroesOut bool) (*models.ComplianceResult, error) {
	if s.metrics != nil {
		s.metrics.TransfersChecked.Inc()
	}
	result, err := s.checker.CheckTransfer(ctx, caller, authority, from, to, senderZeroesOut)
	if err != nil {
		if s.metrics != nil {
			s.metrics.TransfersRejected.WithLabelValues(string(pkgerrors.CodeOf(err))).Inc()
		}
		return nil, err
	}
	return result, nil
}

// TransferShares performs the compliance check and, on success, applies the
// transfer's count effects in the same serialized operation.
func (s *Service) TransferShares(ctx context.Context, caller, authority, from, to id.Address, flags models.TransferZeroFlags) (*models.ComplianceResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	result, err := s.check(ctx, caller, authority, from, to, flags.SenderZeroesOut)
	if err != nil {
		return nil, err
	}
	if err := s.accountant.ApplyTransferEffects(ctx, result, flags); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.TransfersApplied.Inc()
		s.refreshActiveGauge(ctx)
	}
	ports.LogAudit(ctx, s.logger, s.auditPub, audit.NewEvent(
		audit.ActionTransferApplied, caller.String(), result.ReceiverID().String(),
		map[string]any{
			"sender":    result.SenderID().String(),
			"authority": result.AuthorityID.String(),
		}))
	return result, nil
}

// ModifyShareTotalSupply is the mint/burn hook for registered, unrestricted
// share ledgers. Requires the global lock to be off.
func (s *Service) ModifyShareTotalSupply(ctx context.Context, caller, owner id.Address, oldBalance, newBalance uint64) (id.MemberID, id.Rating, id.CountryCode, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	share := s.Share(caller)
	if !share.Set {
		return id.NilMemberID, 0, "", models.ErrShareNotRegistered
	}
	if share.Restricted {
		return id.NilMemberID, 0, "", models.ErrShareRestricted
	}
	if s.GlobalLock() {
		return id.NilMemberID, 0, "", models.ErrTransfersLocked
	}

	memberID, rating, country, err := s.accountant.ApplySupplyChangeEffects(ctx, owner, oldBalance, newBalance)
	if err != nil {
		return id.NilMemberID, 0, "", err
	}
	if s.metrics != nil {
		s.metrics.SupplyChanges.Inc()
		s.refreshActiveGauge(ctx)
	}
	ports.LogAudit(ctx, s.logger, s.auditPub, audit.NewEvent(
		audit.ActionSupplyChanged, caller.String(), memberID.String(),
		map[string]any{"old_balance": oldBalance, "new_balance": newBalance}))
	return memberID, rating, country, nil
}

// ModifyAuthorizedSupply delegates the approval decision to the governance
// collaborator. Without governance the change is not approvable.
func (s *Service) ModifyAuthorizedSupply(ctx context.Context, newValue uint64) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.governance == nil {
		return false, nil
	}
	approved, err := s.governance.ApproveAuthorizedSupply(ctx, newValue)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "governance approval failed")
	}
	return approved, nil
}

// IsRegisteredMember reports whether the address has a memoized member
// identity or is the organization or one of its sub-authorities.
func (s *Service) IsRegisteredMember(ctx context.Context, addr id.Address) (bool, error) {
	if _, ok := s.Grant(addr); ok {
		return true, nil
	}
	memberID, err := s.members.IDForAddress(ctx, addr)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load memoized identity")
	}
	return !memberID.IsNil(), nil
}

// GetID resolves the address to its member identity, memoizing the result.
func (s *Service) GetID(ctx context.Context, addr id.Address) (id.MemberID, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.resolver.Resolve(ctx, addr)
}

// GetMemberVerifier returns the verifier affinity recorded for a member;
// 0 means the member is the organization or a custodian.
func (s *Service) GetMemberVerifier(ctx context.Context, memberID id.MemberID) (int, error) {
	account, err := s.members.Get(ctx, memberID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return 0, models.ErrUnknownTarget
	}
	return account.VerifierAffinity, nil
}

// GetMemberCounts returns the global occupancy table.
func (s *Service) GetMemberCounts(ctx context.Context) (*models.LimitTable, error) {
	return s.countries.Global(ctx)
}

// GetCountry returns the record for a country code; unknown codes yield the
// implicit zero record.
func (s *Service) GetCountry(ctx context.Context, code id.CountryCode) (*models.CountryRecord, error) {
	return s.countries.Get(ctx, code)
}

// GetDocumentHash returns the notarized hash for a member, zero when unset.
func (s *Service) GetDocumentHash(ctx context.Context, memberID id.MemberID) ([32]byte, error) {
	return s.members.DocumentHash(ctx, memberID)
}

func (s *Service) refreshActiveGauge(ctx context.Context) {
	global, err := s.countries.Global(ctx)
	if err != nil {
		return
	}
	s.metrics.ActiveMembers.Set(float64(global.Counts[0]))
}

// ---------------------------------------------------------------------------
// Directory implementations consumed by the resolver and checker. They read
// admin state under stateMu and never touch opMu.
// ---------------------------------------------------------------------------

var (
	_ ports.VerifierDirectory  = (*Service)(nil)
	_ ports.AuthorityDirectory = (*Service)(nil)
	_ ports.ShareDirectory     = (*Service)(nil)
)

func (s *Service) Verifiers() []ports.VerifierRef {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	refs := make([]ports.VerifierRef, 0, len(s.verifiers)-1)
	for i := 1; i < len(s.verifiers); i++ {
		refs = append(refs, ports.VerifierRef{Index: i, Entry: s.verifiers[i], Oracle: s.oracles[i]})
	}
	return refs
}

func (s *Service) Verifier(index int) (ports.VerifierRef, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if index <= 0 || index >= len(s.verifiers) {
		return ports.VerifierRef{}, false
	}
	return ports.VerifierRef{Index: index, Entry: s.verifiers[index], Oracle: s.oracles[index]}, true
}

func (s *Service) OrgID() id.MemberID {
	return s.orgID
}

func (s *Service) OrgAddress() id.Address {
	return s.orgAddress
}

func (s *Service) Grant(addr id.Address) (*models.AuthorityGrant, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	grant, ok := s.authorities[addr]
	if !ok {
		return nil, false
	}
	return &grant, true
}

func (s *Service) IsAuthorityID(memberID id.MemberID) bool {
	if memberID == s.orgID {
		return true
	}
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	for addr := range s.authorities {
		if id.DeriveMemberID(addr) == memberID {
			return true
		}
	}
	return false
}

func (s *Service) Share(addr id.Address) models.ShareEntry {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.shares[addr]
}

func (s *Service) GlobalLock() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.globalLock
}
