// Package models holds the registry's domain records. Stores own persistence
// of these; services treat them as plain values and mutate them only through
// the count accountant.
package models

import (
	"time"

	id "custos/pkg/domain"
)

// MemberAccount is the durable per-member state. Accounts are never deleted;
// restriction is a soft flag. Identity is immutable once assigned except
// VerifierAffinity, which re-resolution may correct.
type MemberAccount struct {
	ID     id.MemberID
	Rating id.Rating
	// VerifierAffinity indexes the ordered verifier list; 0 means unset
	// (organization or custodian account).
	VerifierAffinity int
	// NonzeroBalanceCount is the number of distinct balance-holding
	// relationships keeping this member active in the occupancy tables.
	NonzeroBalanceCount uint64
	Restricted          bool
	// CustodianLink points at the custodian address when the account is held
	// through a custodian.
	CustodianLink id.Address
	// Custodian marks accounts registered through AddCustodian. They carry
	// rating 0 and are exempt from capacity checks.
	Custodian bool
	Exists    bool
}

// VerifierEntry is one slot of the ordered verifier list. Index 0 is a
// reserved sentinel meaning "no verifier"; a member whose affinity is 0 is
// the organization, a custodian, or unregistered.
type VerifierEntry struct {
	// Key identifies the oracle endpoint (address or URL, dialer-defined).
	Key        string
	Restricted bool
}

// MemberFacts is what a verifier oracle reports about one address.
type MemberFacts struct {
	Permitted bool
	Rating    id.Rating
	Country   id.CountryCode
}

// LimitTable is a fixed 8-bucket counts/limits pair. Bucket 0 is the
// aggregate; buckets 1..7 are the rating tiers. A limit of 0 means unlimited.
// Invariant: Counts[0] == Σ Counts[1..7] at all times.
type LimitTable struct {
	Counts [id.RatingBuckets]uint64
	Limits [id.RatingBuckets]uint64
}

// HasHeadroom reports whether one more occupant fits in the bucket.
func (t *LimitTable) HasHeadroom(bucket id.Rating) bool {
	return t.Limits[bucket] == 0 || t.Counts[bucket] < t.Limits[bucket]
}

// AggregateConsistent reports whether the aggregate bucket equals the sum of
// the rating buckets.
func (t *LimitTable) AggregateConsistent() bool {
	var sum uint64
	for i := 1; i < id.RatingBuckets; i++ {
		sum += t.Counts[i]
	}
	return t.Counts[0] == sum
}

// CountryRecord tracks one jurisdiction's permission, minimum rating, and
// occupancy. Records come into existence implicitly on first reference with
// the zero value, which permits nothing.
type CountryRecord struct {
	Code      id.CountryCode
	Permitted bool
	MinRating id.Rating
	Table     LimitTable
}

// ShareEntry marks an external share ledger as an authorized caller.
type ShareEntry struct {
	Set        bool
	Restricted bool
}

// AuthorityMethod is the bitmap of operations a sub-authority may perform on
// behalf of the organization.
type AuthorityMethod uint8

const (
	// MethodTransfer covers transfers where the sub-authority moves its own
	// holding.
	MethodTransfer AuthorityMethod = 1 << iota
	// MethodTransferFrom covers transfers on behalf of another holder.
	MethodTransferFrom
)

// AuthorityGrant is a time-bounded, method-scoped delegation to a
// sub-authority address acting for the organization.
type AuthorityGrant struct {
	Address    id.Address
	Methods    AuthorityMethod
	NotBefore  time.Time
	NotAfter   time.Time
	Restricted bool
}

// ValidAt reports whether the grant's approval window contains now.
func (g *AuthorityGrant) ValidAt(now time.Time) bool {
	return !now.Before(g.NotBefore) && !now.After(g.NotAfter)
}

// Permits reports whether the grant's bitmap includes the method.
func (g *AuthorityGrant) Permits(m AuthorityMethod) bool {
	return g.Methods&m != 0
}

// ComplianceResult is the outcome of a successful transfer check: everything
// the count accountant needs to apply the transfer's bookkeeping effects.
type ComplianceResult struct {
	AuthorityID id.MemberID
	// IDs, Ratings, and Countries are ordered sender, receiver.
	IDs       [2]id.MemberID
	Ratings   [2]id.Rating
	Countries [2]id.CountryCode
}

// SenderID and friends are readability accessors for the pair arrays.
func (r *ComplianceResult) SenderID() id.MemberID   { return r.IDs[0] }
func (r *ComplianceResult) ReceiverID() id.MemberID { return r.IDs[1] }
func (r *ComplianceResult) SelfTransfer() bool      { return r.IDs[0] == r.IDs[1] }

// TransferZeroFlags are the balance zero-crossing facts only the calling
// ledger knows: whether the sender's balance reaches zero, whether the
// receiver's balance was zero before the transfer, and the same two facts for
// the participants' custodial counterparts.
type TransferZeroFlags struct {
	SenderZeroesOut      bool
	ReceiverWasZero      bool
	CustodialSenderZero  bool
	CustodialReceiverNew bool
}
