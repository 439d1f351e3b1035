// Package compliance implements the transfer compliance decision procedure.
// The checker is strictly read-only: it resolves participants, gathers
// verifier facts, and evaluates every predicate in order, failing on the
// first violation. Count mutation is the accountant's job and only happens
// after a check succeeds.
package compliance

import (
	"context"
	"log/slog"
	"time"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
)

// Resolver is the slice of the identity resolver the checker needs.
type Resolver interface {
	Resolve(ctx context.Context, addr id.Address) (id.MemberID, error)
}

// Checker evaluates transfer compliance.
type Checker struct {
	resolver    Resolver
	members     ports.MemberStore
	countries   ports.CountryStore
	verifiers   ports.VerifierDirectory
	authorities ports.AuthorityDirectory
	shares      ports.ShareDirectory
	now         func() time.Time
	logger      *slog.Logger
}

type Option func(*Checker)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// WithClock overrides the ambient clock; tests pin sub-authority windows
// with it.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

func New(
	resolver Resolver,
	members ports.MemberStore,
	countries ports.CountryStore,
	verifiers ports.VerifierDirectory,
	authorities ports.AuthorityDirectory,
	shares ports.ShareDirectory,
	opts ...Option,
) (*Checker, error) {
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "resolver is required")
	}
	if members == nil || countries == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "member and country stores are required")
	}
	if verifiers == nil || authorities == nil || shares == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "verifier, authority, and share directories are required")
	}
	c := &Checker{
		resolver:    resolver,
		members:     members,
		countries:   countries,
		verifiers:   verifiers,
		authorities: authorities,
		shares:      shares,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CheckTransfer evaluates every compliance predicate for a proposed transfer.
// caller is the share ledger invoking the registry; authority is the address
// authorizing the transfer; senderZeroesOut reports whether the sender's
// balance on the calling ledger reaches zero.
func (c *Checker) CheckTransfer(ctx context.Context, caller, authority, from, to id.Address, senderZeroesOut bool) (*models.ComplianceResult, error) {
	authorityID, err := c.resolver.Resolve(ctx, authority)
	if err != nil {
		return nil, err
	}
	senderID, err := c.resolver.Resolve(ctx, from)
	if err != nil {
		return nil, err
	}
	receiverID, err := c.resolver.Resolve(ctx, to)
	if err != nil {
		return nil, err
	}

	orgID := c.authorities.OrgID()
	if authorityID == orgID && authority != c.authorities.OrgAddress() {
		if err := c.checkSubAuthority(authority, from); err != nil {
			return nil, err
		}
	}

	senderAccount, err := c.account(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiverAccount, err := c.account(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	authorityAccount, err := c.account(ctx, authorityID)
	if err != nil {
		return nil, err
	}

	senderFacts, receiverFacts, err := ports.MemberFactsPair(ctx, c.verifiers,
		senderAccount.VerifierAffinity, receiverAccount.VerifierAffinity, from, to)
	if err != nil {
		return nil, err
	}

	if authorityAccount.Custodian && receiverAccount.Custodian {
		return nil, models.ErrCustodianToCustodian
	}

	// The subtraction may wrap when the sender already holds nothing; the
	// wrapped value only ever feeds the post != 0 comparison below, which is
	// exactly the intended "no slot is being freed" reading.
	post := senderAccount.NonzeroBalanceCount
	if senderZeroesOut {
		post--
	}

	if err := c.checkPredicates(ctx, predicateInput{
		caller:           caller,
		authorityID:      authorityID,
		orgID:            orgID,
		senderID:         senderID,
		receiverID:       receiverID,
		senderAccount:    senderAccount,
		receiverAccount:  receiverAccount,
		authorityAccount: authorityAccount,
		senderFacts:      senderFacts,
		receiverFacts:    receiverFacts,
		senderPost:       post,
	}); err != nil {
		return nil, err
	}

	return &models.ComplianceResult{
		AuthorityID: authorityID,
		IDs:         [2]id.MemberID{senderID, receiverID},
		Ratings:     [2]id.Rating{senderFacts.Rating, receiverFacts.Rating},
		Countries:   [2]id.CountryCode{senderFacts.Country, receiverFacts.Country},
	}, nil
}

// checkSubAuthority enforces the delegated caller's approval window and
// method scope.
func (c *Checker) checkSubAuthority(authority, from id.Address) error {
	grant, ok := c.authorities.Grant(authority)
	if !ok {
		return models.ErrAuthorityNotPermitted
	}
	method := models.MethodTransferFrom
	if authority == from {
		method = models.MethodTransfer
	}
	if !grant.ValidAt(c.now()) || !grant.Permits(method) {
		return models.ErrAuthorityNotPermitted
	}
	return nil
}

type predicateInput struct {
	caller           id.Address
	authorityID      id.MemberID
	orgID            id.MemberID
	senderID         id.MemberID
	receiverID       id.MemberID
	senderAccount    *models.MemberAccount
	receiverAccount  *models.MemberAccount
	authorityAccount *models.MemberAccount
	senderFacts      *models.MemberFacts
	receiverFacts    *models.MemberFacts
	senderPost       uint64
}

func (c *Checker) checkPredicates(ctx context.Context, in predicateInput) error {
	share := c.shares.Share(in.caller)
	if !share.Set {
		return models.ErrShareNotRegistered
	}

	if in.authorityID != in.orgID {
		if c.shares.GlobalLock() {
			return models.ErrTransfersLocked
		}
		if share.Restricted {
			return models.ErrShareRestricted
		}
		if in.senderAccount.Restricted {
			return models.ErrSenderRestricted
		}
		if !in.senderFacts.Permitted {
			return models.ErrSenderNotPermitted
		}
		if in.authorityAccount.Restricted {
			return models.ErrAuthorityRestricted
		}
	}

	if in.receiverAccount.Restricted {
		return models.ErrReceiverRestricted
	}
	if !in.receiverFacts.Permitted {
		return models.ErrReceiverNotPermitted
	}

	if in.senderID != in.receiverID && !in.receiverFacts.Rating.IsOrganization() {
		country, err := c.countries.Get(ctx, in.receiverFacts.Country)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load receiver country")
		}
		if !country.Permitted {
			return models.ErrCountryNotPermitted
		}
		if in.receiverFacts.Rating < country.MinRating {
			return models.ErrRatingBelowMinimum
		}

		// Slot availability only matters when the transfer creates a new
		// active holding for the receiver.
		if in.receiverAccount.NonzeroBalanceCount == 0 {
			if err := c.checkSlots(ctx, in, country); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSlots evaluates the four-tier capacity check. A bucket limit of 0
// always has headroom (unlimited).
func (c *Checker) checkSlots(ctx context.Context, in predicateInput, country *models.CountryRecord) error {
	global, err := c.countries.Global(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load global limits")
	}

	// The receiver needs a fresh global slot unless the sender is a rated
	// member whose zeroed-out holding frees one.
	needsGlobalSlot := in.senderFacts.Rating.IsOrganization() || in.senderPost != 0
	countriesDiffer := in.senderFacts.Country != in.receiverFacts.Country
	rating := in.receiverFacts.Rating

	if needsGlobalSlot && !global.HasHeadroom(0) {
		return models.ErrGlobalLimitReached
	}
	if (needsGlobalSlot || countriesDiffer) && !country.Table.HasHeadroom(0) {
		return models.ErrCountryLimitReached
	}

	needsRatingSlot := needsGlobalSlot || in.senderFacts.Rating != rating
	if needsRatingSlot && !global.HasHeadroom(rating) {
		return models.ErrGlobalRatingLimitReached
	}
	if (needsRatingSlot || countriesDiffer) && !country.Table.HasHeadroom(rating) {
		return models.ErrCountryRatingLimitReached
	}
	return nil
}

// account loads a member account that resolution just produced; absence at
// this point is a resolver bug, not a caller error.
func (c *Checker) account(ctx context.Context, memberID id.MemberID) (*models.MemberAccount, error) {
	account, err := c.members.Get(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvariantViolation, "resolved member %s has no account", memberID)
	}
	return account, nil
}
