package service

import (
	"context"
	"fmt"
	"time"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
	"custos/pkg/platform/audit"
)

// Admin mutators. Every one of them consults the external authorization
// capability first and fails closed: (false, nil) means "not yet authorized",
// with no state touched, so callers can distinguish it from a hard error.

// CountrySetting is one entry of a batch country update.
type CountrySetting struct {
	Code      id.CountryCode
	Permitted bool
	MinRating id.Rating
	Limits    [id.RatingBuckets]uint64
}

// SetCountry updates a country's permission, minimum rating, and limits.
// Occupancy counts are never touched here; only the accountant moves those.
func (s *Service) SetCountry(ctx context.Context, setting CountrySetting) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	if err := s.applyCountrySetting(ctx, setting); err != nil {
		return false, err
	}
	s.audit(ctx, audit.ActionCountrySet, setting.Code.String(), map[string]any{
		"permitted":  setting.Permitted,
		"min_rating": setting.MinRating,
	})
	return true, nil
}

// SetCountries applies a batch of country updates under one authorization.
func (s *Service) SetCountries(ctx context.Context, settings []CountrySetting) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	for _, setting := range settings {
		if err := s.applyCountrySetting(ctx, setting); err != nil {
			return false, err
		}
	}
	s.audit(ctx, audit.ActionCountrySet, fmt.Sprintf("batch of %d", len(settings)), nil)
	return true, nil
}

func (s *Service) applyCountrySetting(ctx context.Context, setting CountrySetting) error {
	if setting.Code.IsNil() {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "country code is required")
	}
	record, err := s.countries.Get(ctx, setting.Code)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load country")
	}
	record.Permitted = setting.Permitted
	record.MinRating = setting.MinRating
	record.Table.Limits = setting.Limits
	if err := s.countries.Put(ctx, record); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store country")
	}
	return nil
}

// SetMemberLimits replaces the global limit buckets.
func (s *Service) SetMemberLimits(ctx context.Context, limits [id.RatingBuckets]uint64) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	global, err := s.countries.Global(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load global limits")
	}
	global.Limits = limits
	if err := s.countries.PutGlobal(ctx, global); err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store global limits")
	}
	s.audit(ctx, audit.ActionLimitsSet, "global", nil)
	return true, nil
}

// SetVerifier registers or updates a slot of the ordered verifier list.
// Slot 0 is the reserved sentinel; appending uses index == current length.
func (s *Service) SetVerifier(ctx context.Context, index int, key string, restricted bool) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if index <= 0 || index > len(s.verifiers) {
		return false, pkgerrors.Newf(pkgerrors.CodeInvalidInput, "verifier index %d out of range", index)
	}
	oracle, err := s.dialer.Dial(key)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInvalidInput, "dial verifier oracle")
	}
	entry := models.VerifierEntry{Key: key, Restricted: restricted}
	if index == len(s.verifiers) {
		s.verifiers = append(s.verifiers, entry)
		s.oracles = append(s.oracles, oracle)
	} else {
		s.verifiers[index] = entry
		s.oracles[index] = oracle
	}
	s.audit(ctx, audit.ActionVerifierSet, key, map[string]any{
		"index":      index,
		"restricted": restricted,
	})
	return true, nil
}

// SetEntityRestriction flips the restriction flag of a member (by address)
// or of a sub-authority grant.
func (s *Service) SetEntityRestriction(ctx context.Context, addr id.Address, restricted bool) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	s.stateMu.Lock()
	if grant, ok := s.authorities[addr]; ok {
		grant.Restricted = restricted
		s.authorities[addr] = grant
		s.stateMu.Unlock()
		s.audit(ctx, audit.ActionRestrictionSet, addr.String(), map[string]any{"restricted": restricted})
		return true, nil
	}
	s.stateMu.Unlock()

	memberID, err := s.members.IDForAddress(ctx, addr)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load memoized identity")
	}
	if memberID.IsNil() {
		return false, models.ErrUnknownTarget
	}
	account, err := s.members.Get(ctx, memberID)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return false, models.ErrUnknownTarget
	}
	account.Restricted = restricted
	if err := s.members.Put(ctx, account); err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store member account")
	}
	s.audit(ctx, audit.ActionRestrictionSet, addr.String(), map[string]any{"restricted": restricted})
	return true, nil
}

// SetOrgShareRestriction locks or unlocks a single registered share ledger.
func (s *Service) SetOrgShareRestriction(ctx context.Context, share id.Address, restricted bool) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	entry, ok := s.shares[share]
	if !ok || !entry.Set {
		return false, models.ErrUnknownTarget
	}
	entry.Restricted = restricted
	s.shares[share] = entry
	s.audit(ctx, audit.ActionRestrictionSet, share.String(), map[string]any{"restricted": restricted})
	return true, nil
}

// SetGlobalRestriction flips the global transfer lock.
func (s *Service) SetGlobalRestriction(ctx context.Context, locked bool) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	s.stateMu.Lock()
	s.globalLock = locked
	s.stateMu.Unlock()

	s.audit(ctx, audit.ActionGlobalLockSet, "global", map[string]any{"locked": locked})
	return true, nil
}

// SetGovernance installs or replaces the governance collaborator.
func (s *Service) SetGovernance(ctx context.Context, governance ports.Governance) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	s.governance = governance
	return true, nil
}

// AddCustodian registers a custodian account for the address. Custodians
// carry rating 0 and never occupy capacity slots.
func (s *Service) AddCustodian(ctx context.Context, addr id.Address) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	existing, err := s.members.IDForAddress(ctx, addr)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load memoized identity")
	}
	if !existing.IsNil() {
		return false, models.ErrAlreadyRegistered
	}
	custodianID := id.DeriveMemberID(addr)
	if err := s.members.Put(ctx, &models.MemberAccount{ID: custodianID, Custodian: true, Exists: true}); err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "create custodian account")
	}
	if err := s.members.MapAddress(ctx, addr, custodianID); err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "memoize custodian address")
	}
	s.audit(ctx, audit.ActionCustodianAdded, addr.String(), nil)
	return true, nil
}

// AddOrgShare registers an external share ledger as an authorized caller.
// When governance is installed, it must approve the registration as well.
func (s *Service) AddOrgShare(ctx context.Context, share id.Address) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	if s.governance != nil {
		approved, err := s.governance.ApproveOrgShare(ctx, share)
		if err != nil {
			return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "governance approval failed")
		}
		if !approved {
			return false, nil
		}
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if entry := s.shares[share]; entry.Set {
		return false, models.ErrAlreadyRegistered
	}
	s.shares[share] = models.ShareEntry{Set: true}
	s.audit(ctx, audit.ActionShareAdded, share.String(), nil)
	return true, nil
}

// AttachModule registers an auxiliary contract module address.
func (s *Service) AttachModule(ctx context.Context, module id.Address) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.modules[module] {
		return false, models.ErrAlreadyRegistered
	}
	s.modules[module] = true
	s.audit(ctx, audit.ActionModuleAttached, module.String(), nil)
	return true, nil
}

// DetachModule removes a registered module address.
func (s *Service) DetachModule(ctx context.Context, module id.Address) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if !s.modules[module] {
		return false, models.ErrUnknownTarget
	}
	delete(s.modules, module)
	s.audit(ctx, audit.ActionModuleDetached, module.String(), nil)
	return true, nil
}

// SetAuthority grants or updates a sub-authority: a delegated caller acting
// for the organization within a time window and a method scope.
func (s *Service) SetAuthority(ctx context.Context, addr id.Address, methods models.AuthorityMethod, notBefore, notAfter time.Time) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	if addr.IsNil() || addr == s.orgAddress {
		return false, pkgerrors.New(pkgerrors.CodeInvalidInput, "sub-authority address must differ from the organization's")
	}
	if !notAfter.After(notBefore) {
		return false, pkgerrors.New(pkgerrors.CodeInvalidInput, "authority window must end after it starts")
	}

	s.stateMu.Lock()
	s.authorities[addr] = models.AuthorityGrant{
		Address:   addr,
		Methods:   methods,
		NotBefore: notBefore,
		NotAfter:  notAfter,
	}
	s.stateMu.Unlock()

	s.audit(ctx, audit.ActionAuthorityGranted, addr.String(), map[string]any{
		"methods":    methods,
		"not_before": notBefore,
		"not_after":  notAfter,
	})
	return true, nil
}

// SetDocument notarizes a document hash for a member. The zero hash is
// reserved for "unset" and rejected.
func (s *Service) SetDocument(ctx context.Context, memberID id.MemberID, hash [32]byte) (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.authorizer.IsAuthorized(ctx) {
		return false, nil
	}
	if hash == [32]byte{} {
		return false, models.ErrZeroDocumentHash
	}
	account, err := s.members.Get(ctx, memberID)
	if err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return false, models.ErrUnknownTarget
	}
	if err := s.members.SetDocumentHash(ctx, memberID, hash); err != nil {
		return false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store document hash")
	}
	s.audit(ctx, audit.ActionDocumentNotarized, memberID.String(), nil)
	return true, nil
}

func (s *Service) audit(ctx context.Context, action, subject string, fields map[string]any) {
	ports.LogAudit(ctx, s.logger, s.auditPub, audit.NewEvent(action, "admin", subject, fields))
}
