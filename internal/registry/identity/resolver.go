// Package identity maps participant addresses to durable member identities.
// Resolution memoizes across calls and cross-checks verifier answers against
// restricted verifiers and authority addresses; its only side effects are the
// memo table and newly created member accounts.
package identity

import (
	"context"
	"log/slog"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
)

// Resolver resolves addresses to member identities.
type Resolver struct {
	members     ports.MemberStore
	verifiers   ports.VerifierDirectory
	authorities ports.AuthorityDirectory
	logger      *slog.Logger
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(members ports.MemberStore, verifiers ports.VerifierDirectory, authorities ports.AuthorityDirectory, opts ...Option) (*Resolver, error) {
	if members == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "member store is required")
	}
	if verifiers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "verifier directory is required")
	}
	if authorities == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "authority directory is required")
	}
	r := &Resolver{
		members:     members,
		verifiers:   verifiers,
		authorities: authorities,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve maps an address to its member identity. Idempotent once an
// affinity is confirmed and unrestricted.
func (r *Resolver) Resolve(ctx context.Context, addr id.Address) (id.MemberID, error) {
	// Sub-authority addresses act as the organization itself.
	if grant, ok := r.authorities.Grant(addr); ok {
		if grant.Restricted {
			return id.NilMemberID, models.ErrRestrictedAuthority
		}
		return r.authorities.OrgID(), nil
	}

	memoized, err := r.members.IDForAddress(ctx, addr)
	if err != nil {
		return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load memoized identity")
	}
	if !memoized.IsNil() {
		account, err := r.members.Get(ctx, memoized)
		if err != nil {
			return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
		}
		if account != nil {
			// Fast path: no oracle call while the recorded verifier stays
			// unrestricted, or while a custodian holds the account.
			if account.Custodian || !account.CustodianLink.IsNil() {
				return memoized, nil
			}
			if account.VerifierAffinity == 0 {
				return memoized, nil
			}
			if ref, ok := r.verifiers.Verifier(account.VerifierAffinity); ok && !ref.Entry.Restricted {
				return memoized, nil
			}
			return r.reconfirm(ctx, addr, account)
		}
	}

	return r.scan(ctx, addr)
}

// scan walks the verifier list in registration order for an address with no
// usable memoized identity.
func (r *Resolver) scan(ctx context.Context, addr id.Address) (id.MemberID, error) {
	var candidate id.MemberID
	for _, ref := range r.verifiers.Verifiers() {
		if ref.Entry.Restricted {
			continue
		}
		got, err := ref.Oracle.GetID(ctx, addr)
		if err != nil {
			// Oracles are pluggable and untrusted; one failing must not
			// block resolution through the others.
			r.log(ctx, "verifier lookup failed", "verifier", ref.Index, "error", err)
			continue
		}
		if got.IsNil() || r.authorities.IsAuthorityID(got) {
			continue
		}
		account, err := r.members.Get(ctx, got)
		if err != nil {
			return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load member account")
		}
		if account == nil {
			account = &models.MemberAccount{
				ID:               got,
				VerifierAffinity: ref.Index,
				Exists:           true,
			}
			if err := r.members.Put(ctx, account); err != nil {
				return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "create member account")
			}
			if err := r.members.MapAddress(ctx, addr, got); err != nil {
				return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "memoize identity")
			}
			return got, nil
		}
		if account.VerifierAffinity == ref.Index {
			if err := r.members.MapAddress(ctx, addr, got); err != nil {
				return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "memoize identity")
			}
			return got, nil
		}
		// Known member under a different affinity: keep scanning so the
		// recorded verifier can confirm; never overwrite the affinity here.
		candidate = got
	}
	if !candidate.IsNil() {
		if err := r.members.MapAddress(ctx, addr, candidate); err != nil {
			return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "memoize identity")
		}
		return candidate, nil
	}
	return id.NilMemberID, models.ErrAddressNotRegistered
}

// reconfirm handles a memoized identity whose recorded verifier became
// restricted: another verifier must attest the identical identity before the
// address resolves again.
func (r *Resolver) reconfirm(ctx context.Context, addr id.Address, account *models.MemberAccount) (id.MemberID, error) {
	for _, ref := range r.verifiers.Verifiers() {
		if ref.Entry.Restricted || ref.Index == account.VerifierAffinity {
			continue
		}
		got, err := ref.Oracle.GetID(ctx, addr)
		if err != nil {
			r.log(ctx, "verifier lookup failed", "verifier", ref.Index, "error", err)
			continue
		}
		if got != account.ID {
			continue
		}
		account.VerifierAffinity = ref.Index
		if err := r.members.Put(ctx, account); err != nil {
			return id.NilMemberID, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "refresh verifier affinity")
		}
		return account.ID, nil
	}
	return id.NilMemberID, models.ErrVerifierRestricted
}

func (r *Resolver) log(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.WarnContext(ctx, msg, args...)
	}
}
