// Package counts is the only place registry occupancy mutates. The
// accountant runs strictly after a successful compliance check, so every
// arithmetic inconsistency it detects is a checker bug and surfaces as an
// invariant violation rather than a recoverable error.
package counts

import (
	"context"
	"log/slog"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
)

// Resolver is the slice of the identity resolver the accountant needs for
// supply changes.
type Resolver interface {
	Resolve(ctx context.Context, addr id.Address) (id.MemberID, error)
}

// Accountant applies balance-crossing-zero effects to member counters and
// the occupancy tables.
type Accountant struct {
	resolver    Resolver
	members     ports.MemberStore
	countries   ports.CountryStore
	verifiers   ports.VerifierDirectory
	authorities ports.AuthorityDirectory
	logger      *slog.Logger
}

type Option func(*Accountant)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Accountant) {
		a.logger = logger
	}
}

func New(
	resolver Resolver,
	members ports.MemberStore,
	countries ports.CountryStore,
	verifiers ports.VerifierDirectory,
	authorities ports.AuthorityDirectory,
	opts ...Option,
) (*Accountant, error) {
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "resolver is required")
	}
	if members == nil || countries == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "member and country stores are required")
	}
	if verifiers == nil || authorities == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "verifier and authority directories are required")
	}
	a := &Accountant{
		resolver:    resolver,
		members:     members,
		countries:   countries,
		verifiers:   verifiers,
		authorities: authorities,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// IncrementActive adds one active member to the global table and the given
// country's table in lockstep: aggregate bucket and rating bucket in both.
func (a *Accountant) IncrementActive(ctx context.Context, rating id.Rating, country id.CountryCode) error {
	if rating.IsOrganization() {
		return pkgerrors.New(pkgerrors.CodeInvariantViolation, "rating 0 never occupies capacity slots")
	}
	global, err := a.countries.Global(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load global limits")
	}
	record, err := a.countries.Get(ctx, country)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load country")
	}

	global.Counts[0]++
	global.Counts[rating]++
	record.Table.Counts[0]++
	record.Table.Counts[rating]++

	if err := a.countries.PutGlobal(ctx, global); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store global limits")
	}
	if err := a.countries.Put(ctx, record); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store country")
	}
	return nil
}

// DecrementActive removes one active member from both tables in lockstep.
func (a *Accountant) DecrementActive(ctx context.Context, rating id.Rating, country id.CountryCode) error {
	if rating.IsOrganization() {
		return pkgerrors.New(pkgerrors.CodeInvariantViolation, "rating 0 never occupies capacity slots")
	}
	global, err := a.countries.Global(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load global limits")
	}
	record, err := a.countries.Get(ctx, country)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load country")
	}
	if global.Counts[0] == 0 || global.Counts[rating] == 0 ||
		record.Table.Counts[0] == 0 || record.Table.Counts[rating] == 0 {
		return pkgerrors.Newf(pkgerrors.CodeInvariantViolation,
			"decrement of empty bucket (rating %d, country %q)", rating, country)
	}

	global.Counts[0]--
	global.Counts[rating]--
	record.Table.Counts[0]--
	record.Table.Counts[rating]--

	if err := a.countries.PutGlobal(ctx, global); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store global limits")
	}
	if err := a.countries.Put(ctx, record); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store country")
	}
	return nil
}

// SetRating records a member's new rating. When the member actively occupies
// a slot under a nonzero rating, one unit moves between rating buckets within
// the given country's table only; the global per-rating buckets deliberately
// stay untouched, mirroring the historical bookkeeping this registry
// replaces. A move to rating 0 releases the unit from the rated buckets and
// the country aggregate with it.
func (a *Accountant) SetRating(ctx context.Context, memberID id.MemberID, newRating id.Rating, country id.CountryCode) error {
	account, err := a.members.Get(ctx, memberID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return pkgerrors.Newf(pkgerrors.CodeInvariantViolation, "rating change for unknown member %s", memberID)
	}
	if account.Rating == newRating {
		return nil
	}
	previous := account.Rating

	if !previous.IsOrganization() && account.NonzeroBalanceCount > 0 {
		record, err := a.countries.Get(ctx, country)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load country")
		}
		if record.Table.Counts[previous] == 0 {
			return pkgerrors.Newf(pkgerrors.CodeInvariantViolation,
				"rating move from empty bucket %d in country %q", previous, country)
		}
		record.Table.Counts[previous]--
		if newRating.IsOrganization() {
			record.Table.Counts[0]--
		} else {
			record.Table.Counts[newRating]++
		}
		if err := a.countries.Put(ctx, record); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store country")
		}
	}

	account.Rating = newRating
	if err := a.members.Put(ctx, account); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store member account")
	}
	return nil
}

// ApplyTransferEffects applies an approved transfer's bookkeeping: rating
// sync for both participants, then nonzero-balance counter moves with
// occupancy mutation exactly on 0↔nonzero transitions. Self-transfers are a
// no-op.
func (a *Accountant) ApplyTransferEffects(ctx context.Context, result *models.ComplianceResult, flags models.TransferZeroFlags) error {
	if result.SelfTransfer() {
		return nil
	}

	if err := a.SetRating(ctx, result.SenderID(), result.Ratings[0], result.Countries[0]); err != nil {
		return err
	}
	if err := a.SetRating(ctx, result.ReceiverID(), result.Ratings[1], result.Countries[1]); err != nil {
		return err
	}

	if flags.SenderZeroesOut {
		if err := a.adjust(ctx, result.SenderID(), -1, result.Ratings[0], result.Countries[0]); err != nil {
			return err
		}
	}
	if flags.ReceiverWasZero {
		if err := a.adjust(ctx, result.ReceiverID(), +1, result.Ratings[1], result.Countries[1]); err != nil {
			return err
		}
	}

	if flags.CustodialSenderZero {
		if err := a.adjustCustodian(ctx, result.SenderID(), -1); err != nil {
			return err
		}
	}
	if flags.CustodialReceiverNew {
		if err := a.adjustCustodian(ctx, result.ReceiverID(), +1); err != nil {
			return err
		}
	}
	return nil
}

// ApplySupplyChangeEffects mirrors transfer bookkeeping for mint and burn.
// The organization's own supply never touches the occupancy tables.
func (a *Accountant) ApplySupplyChangeEffects(ctx context.Context, owner id.Address, oldBalance, newBalance uint64) (id.MemberID, id.Rating, id.CountryCode, error) {
	if owner == a.authorities.OrgAddress() {
		return a.authorities.OrgID(), 0, "", nil
	}

	memberID, err := a.resolver.Resolve(ctx, owner)
	if err != nil {
		return id.NilMemberID, 0, "", err
	}
	account, err := a.members.Get(ctx, memberID)
	if err != nil {
		return id.NilMemberID, 0, "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return id.NilMemberID, 0, "", pkgerrors.Newf(pkgerrors.CodeInvariantViolation, "resolved member %s has no account", memberID)
	}
	facts, err := ports.MemberFactsFor(ctx, a.verifiers, account.VerifierAffinity, owner)
	if err != nil {
		return id.NilMemberID, 0, "", err
	}

	if err := a.SetRating(ctx, memberID, facts.Rating, facts.Country); err != nil {
		return id.NilMemberID, 0, "", err
	}

	switch {
	case oldBalance == 0 && newBalance != 0:
		if err := a.adjust(ctx, memberID, +1, facts.Rating, facts.Country); err != nil {
			return id.NilMemberID, 0, "", err
		}
	case oldBalance != 0 && newBalance == 0:
		if err := a.adjust(ctx, memberID, -1, facts.Rating, facts.Country); err != nil {
			return id.NilMemberID, 0, "", err
		}
	}
	return memberID, facts.Rating, facts.Country, nil
}

// adjust moves a member's nonzero-balance counter one step and mutates the
// occupancy tables exactly when the counter crosses zero. Rating 0 accounts
// keep their counter without ever occupying a slot.
func (a *Accountant) adjust(ctx context.Context, memberID id.MemberID, delta int, rating id.Rating, country id.CountryCode) error {
	account, err := a.members.Get(ctx, memberID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil {
		return pkgerrors.Newf(pkgerrors.CodeInvariantViolation, "counter move for unknown member %s", memberID)
	}

	if delta < 0 {
		if account.NonzeroBalanceCount == 0 {
			return pkgerrors.Newf(pkgerrors.CodeInvariantViolation, "counter underflow for member %s", memberID)
		}
		account.NonzeroBalanceCount--
		if account.NonzeroBalanceCount == 0 && !rating.IsOrganization() {
			if err := a.DecrementActive(ctx, rating, country); err != nil {
				return err
			}
		}
	} else {
		account.NonzeroBalanceCount++
		if account.NonzeroBalanceCount == 1 && !rating.IsOrganization() {
			if err := a.IncrementActive(ctx, rating, country); err != nil {
				return err
			}
		}
	}

	if err := a.members.Put(ctx, account); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "store member account")
	}
	return nil
}

// adjustCustodian moves the counter of a participant's custodian, when one
// is linked. Custodians carry rating 0, so only the counter moves.
func (a *Accountant) adjustCustodian(ctx context.Context, memberID id.MemberID, delta int) error {
	account, err := a.members.Get(ctx, memberID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
	}
	if account == nil || account.CustodianLink.IsNil() {
		return nil
	}
	custodianID, err := a.members.IDForAddress(ctx, account.CustodianLink)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "resolve custodian link")
	}
	if custodianID.IsNil() {
		return pkgerrors.Newf(pkgerrors.CodeInvariantViolation, "custodian link %s has no account", account.CustodianLink)
	}
	return a.adjust(ctx, custodianID, delta, 0, "")
}
