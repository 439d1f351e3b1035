package models

import pkgerrors "custos/pkg/errors"

// Identity resolution failures. Always abort the whole operation.
var (
	ErrAddressNotRegistered = pkgerrors.New(pkgerrors.CodeNotFound, "address not registered with any verifier")
	ErrVerifierRestricted   = pkgerrors.New(pkgerrors.CodeForbidden, "member's verifier is restricted and no other verifier confirms the identity")
	ErrRestrictedAuthority  = pkgerrors.New(pkgerrors.CodeForbidden, "authority address is restricted")
)

// Compliance failures. The checker mutates nothing, so these abort for free.
var (
	ErrShareNotRegistered    = pkgerrors.New(pkgerrors.CodeUnauthorized, "calling ledger is not a registered share")
	ErrShareRestricted       = pkgerrors.New(pkgerrors.CodeForbidden, "calling ledger is restricted")
	ErrTransfersLocked       = pkgerrors.New(pkgerrors.CodeForbidden, "transfers are globally locked")
	ErrAuthorityNotPermitted = pkgerrors.New(pkgerrors.CodeForbidden, "sub-authority window or method scope does not permit this operation")
	ErrAuthorityRestricted   = pkgerrors.New(pkgerrors.CodeForbidden, "authority is restricted")
	ErrCustodianToCustodian  = pkgerrors.New(pkgerrors.CodeForbidden, "custodian-to-custodian transfers are forbidden")
	ErrSenderRestricted      = pkgerrors.New(pkgerrors.CodeForbidden, "sender is restricted by the organization")
	ErrSenderNotPermitted    = pkgerrors.New(pkgerrors.CodeForbidden, "sender is not permitted by its verifier")
	ErrReceiverRestricted    = pkgerrors.New(pkgerrors.CodeForbidden, "receiver is restricted by the organization")
	ErrReceiverNotPermitted  = pkgerrors.New(pkgerrors.CodeForbidden, "receiver is not permitted by its verifier")
	ErrCountryNotPermitted   = pkgerrors.New(pkgerrors.CodeForbidden, "receiver country is not permitted")
	ErrRatingBelowMinimum    = pkgerrors.New(pkgerrors.CodeForbidden, "receiver rating is below the country minimum")
)

// Capacity failures, one per occupancy bucket scope.
var (
	ErrGlobalLimitReached        = pkgerrors.New(pkgerrors.CodeForbidden, "global member limit reached")
	ErrCountryLimitReached       = pkgerrors.New(pkgerrors.CodeForbidden, "country member limit reached")
	ErrGlobalRatingLimitReached  = pkgerrors.New(pkgerrors.CodeForbidden, "global limit for the receiver's rating reached")
	ErrCountryRatingLimitReached = pkgerrors.New(pkgerrors.CodeForbidden, "country limit for the receiver's rating reached")
)

// Admin state failures. These abort the specific admin call.
var (
	ErrAlreadyRegistered = pkgerrors.New(pkgerrors.CodeConflict, "target is already registered")
	ErrUnknownTarget     = pkgerrors.New(pkgerrors.CodeNotFound, "target is not registered")
	ErrZeroDocumentHash  = pkgerrors.New(pkgerrors.CodeInvalidInput, "document hash must be nonzero")
)
