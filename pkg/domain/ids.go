// Package domain holds the typed identifiers shared across the registry.
// Parsing enforces validity at trust boundaries; the rest of the code can
// assume a non-nil value is well formed.
package domain

import (
	"crypto/sha256"
	"encoding/hex"

	pkgerrors "custos/pkg/errors"
)

// MemberID is the durable, opaque 256-bit member identity assigned by a
// verifier oracle (or derived from an address for the organization and its
// custodians). The zero value means "no member".
type MemberID [32]byte

// NilMemberID is the zero member identity.
var NilMemberID MemberID

// ParseMemberID decodes a 64-character hex string into a MemberID.
func ParseMemberID(s string) (MemberID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return NilMemberID, pkgerrors.Newf(pkgerrors.CodeInvalidInput, "invalid member id %q", s)
	}
	var id MemberID
	copy(id[:], raw)
	if id.IsNil() {
		return NilMemberID, pkgerrors.New(pkgerrors.CodeInvalidInput, "member id must be nonzero")
	}
	return id, nil
}

// DeriveMemberID mints a deterministic member identity from an address.
// Used for the organization and custodian accounts, which never pass through
// a verifier oracle.
func DeriveMemberID(addr Address) MemberID {
	return MemberID(sha256.Sum256([]byte(addr)))
}

func (id MemberID) String() string {
	return hex.EncodeToString(id[:])
}

func (id MemberID) IsNil() bool {
	return id == NilMemberID
}

// Address identifies a participant on the share ledgers. Treated as an
// opaque case-sensitive string; emptiness is the only invalid form.
type Address string

// ParseAddress validates an address string.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return "", pkgerrors.New(pkgerrors.CodeInvalidInput, "address is required")
	}
	return Address(s), nil
}

func (a Address) String() string {
	return string(a)
}

func (a Address) IsNil() bool {
	return a == ""
}

// CountryCode classifies a member's jurisdiction. Empty means unclassified
// (organization and custodian accounts).
type CountryCode string

func (c CountryCode) String() string {
	return string(c)
}

func (c CountryCode) IsNil() bool {
	return c == ""
}

// Rating is the compliance tier of a member, 0 through 7. Rating 0 is
// reserved for the organization and custodians and is exempt from capacity
// checks.
type Rating uint8

// RatingBuckets is the fixed width of every counts/limits table: bucket 0 is
// the aggregate, buckets 1..7 are the rating tiers. Downstream invariants
// depend on the fixed aggregate slot; never generalize this.
const RatingBuckets = 8

// MaxRating is the highest assignable rating tier.
const MaxRating Rating = RatingBuckets - 1

// ParseRating validates a rating tier.
func ParseRating(v uint8) (Rating, error) {
	if v > uint8(MaxRating) {
		return 0, pkgerrors.Newf(pkgerrors.CodeInvalidInput, "rating %d out of range", v)
	}
	return Rating(v), nil
}

// IsOrganization reports whether the rating marks an organization or
// custodian account, which never occupies capacity slots.
func (r Rating) IsOrganization() bool {
	return r == 0
}
