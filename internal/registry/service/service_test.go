package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	"custos/internal/registry/store/country"
	"custos/internal/registry/store/member"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
)

// =============================================================================
// Registry Service Scenario Suite
// =============================================================================
// These tests drive the service through its public surface only: admin setup,
// then transfers and supply changes, asserting observable registry state. The
// oracle is a scripted fake behind the real dialer port.

const (
	orgAddr  id.Address     = "org"
	ledger   id.Address     = "ledger-1"
	atlantis id.CountryCode = "AT"
)

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	members    *member.MemoryStore
	countries  *country.MemoryStore
	oracle     *scriptedOracle
	authorizer *switchAuthorizer
	now        time.Time
	svc        *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.members = member.New()
	s.countries = country.New()
	s.oracle = &scriptedOracle{facts: map[id.Address]*models.MemberFacts{}}
	s.authorizer = &switchAuthorizer{authorized: true}
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc, err := New(s.members, s.countries,
		&scriptedDialer{oracle: s.oracle}, s.authorizer, orgAddr,
		WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
	s.svc = svc

	// Baseline setup shared by most scenarios: one verifier, one registered
	// ledger, one permitted jurisdiction.
	s.mustApply(s.svc.SetVerifier(s.ctx, 1, "kyc-main", false))
	s.mustApply(s.svc.AddOrgShare(s.ctx, ledger))
	s.mustApply(s.svc.SetCountry(s.ctx, CountrySetting{Code: atlantis, Permitted: true}))
}

func (s *ServiceSuite) mustApply(applied bool, err error) {
	s.Require().NoError(err)
	s.Require().True(applied)
}

// attest scripts the oracle to vouch for an address.
func (s *ServiceSuite) attest(addr id.Address, rating id.Rating, home id.CountryCode) {
	s.oracle.facts[addr] = &models.MemberFacts{Permitted: true, Rating: rating, Country: home}
}

// TestLifecycle walks a share through mint, transfer, and burn.
func (s *ServiceSuite) TestLifecycle() {
	s.attest("alice", 3, atlantis)
	s.attest("bob", 3, atlantis)

	// Mint to alice activates her slot.
	memberID, rating, home, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 1000)
	s.Require().NoError(err)
	s.Equal(id.DeriveMemberID("alice"), memberID)
	s.Equal(id.Rating(3), rating)
	s.Equal(atlantis, home)

	table, err := s.svc.GetMemberCounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), table.Counts[0])
	s.Equal(uint64(1), table.Counts[3])

	// Full transfer to bob: alice frees her slot, bob occupies one.
	result, err := s.svc.TransferShares(s.ctx, ledger, "alice", "alice", "bob",
		models.TransferZeroFlags{SenderZeroesOut: true, ReceiverWasZero: true})
	s.Require().NoError(err)
	s.Equal(id.DeriveMemberID("bob"), result.ReceiverID())

	table, err = s.svc.GetMemberCounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), table.Counts[0])

	record, err := s.svc.GetCountry(s.ctx, atlantis)
	s.Require().NoError(err)
	s.Equal(uint64(1), record.Table.Counts[0])
	s.True(record.Table.AggregateConsistent())

	// Burn bob out entirely.
	_, _, _, err = s.svc.ModifyShareTotalSupply(s.ctx, ledger, "bob", 1000, 0)
	s.Require().NoError(err)

	table, err = s.svc.GetMemberCounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), table.Counts[0])
}

// TestCapacityEnforcement verifies limits bite through the public surface.
func (s *ServiceSuite) TestCapacityEnforcement() {
	s.Run("global aggregate limit blocks a new activation", func() {
		s.SetupTest()
		s.mustApply(s.svc.SetMemberLimits(s.ctx, [8]uint64{1, 0, 0, 0, 0, 0, 0, 0}))
		s.attest("alice", 3, atlantis)
		s.attest("bob", 3, atlantis)
		_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
		s.Require().NoError(err)

		// Alice keeps holding, so bob's activation needs a second slot.
		_, err = s.svc.CheckTransfer(s.ctx, ledger, "alice", "alice", "bob", false)
		s.Require().ErrorIs(err, models.ErrGlobalLimitReached)
	})

	s.Run("a full exit frees the slot for the receiver", func() {
		s.SetupTest()
		s.mustApply(s.svc.SetMemberLimits(s.ctx, [8]uint64{1, 0, 0, 0, 0, 0, 0, 0}))
		s.attest("alice", 3, atlantis)
		s.attest("bob", 3, atlantis)
		_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
		s.Require().NoError(err)

		_, err = s.svc.CheckTransfer(s.ctx, ledger, "alice", "alice", "bob", true)
		s.Require().NoError(err)
	})

	s.Run("country limits bind independently of global ones", func() {
		s.SetupTest()
		s.mustApply(s.svc.SetCountry(s.ctx, CountrySetting{
			Code: atlantis, Permitted: true, Limits: [8]uint64{1, 0, 0, 0, 0, 0, 0, 0}}))
		s.mustApply(s.svc.SetCountry(s.ctx, CountrySetting{Code: "BD", Permitted: true}))
		s.attest("alice", 3, "BD")
		s.attest("bob", 3, atlantis)
		s.attest("carol", 3, atlantis)
		_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "bob", 0, 500)
		s.Require().NoError(err)
		_, _, _, err = s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
		s.Require().NoError(err)

		// Cross-country receipt: the freed slot is Bordurian, Atlantis is full.
		_, err = s.svc.CheckTransfer(s.ctx, ledger, "alice", "alice", "carol", true)
		s.Require().ErrorIs(err, models.ErrCountryLimitReached)
	})
}

// TestAdminFailsClosed verifies the (false, nil) contract when authorization
// is missing, with no state touched.
func (s *ServiceSuite) TestAdminFailsClosed() {
	s.authorizer.authorized = false

	applied, err := s.svc.AddOrgShare(s.ctx, "ledger-2")
	s.Require().NoError(err)
	s.False(applied)
	s.False(s.svc.Share("ledger-2").Set)

	applied, err = s.svc.SetGlobalRestriction(s.ctx, true)
	s.Require().NoError(err)
	s.False(applied)
	s.False(s.svc.GlobalLock())

	applied, err = s.svc.SetVerifier(s.ctx, 2, "kyc-other", false)
	s.Require().NoError(err)
	s.False(applied)

	applied, err = s.svc.AddCustodian(s.ctx, "keeper")
	s.Require().NoError(err)
	s.False(applied)
}

// TestAdminValidation verifies hard errors are distinct from denial.
func (s *ServiceSuite) TestAdminValidation() {
	s.Run("verifier slot zero is reserved", func() {
		_, err := s.svc.SetVerifier(s.ctx, 0, "kyc-x", false)
		s.Require().Error(err)
		s.True(pkgerrors.HasCode(err, pkgerrors.CodeInvalidInput))
	})

	s.Run("verifier index beyond the append position is rejected", func() {
		_, err := s.svc.SetVerifier(s.ctx, 7, "kyc-x", false)
		s.Require().Error(err)
	})

	s.Run("duplicate ledger registration is rejected", func() {
		_, err := s.svc.AddOrgShare(s.ctx, ledger)
		s.Require().ErrorIs(err, models.ErrAlreadyRegistered)
	})

	s.Run("duplicate custodian is rejected", func() {
		s.mustApply(s.svc.AddCustodian(s.ctx, "keeper"))
		_, err := s.svc.AddCustodian(s.ctx, "keeper")
		s.Require().ErrorIs(err, models.ErrAlreadyRegistered)
	})

	s.Run("restriction of an unknown target is rejected", func() {
		_, err := s.svc.SetEntityRestriction(s.ctx, "stranger", true)
		s.Require().ErrorIs(err, models.ErrUnknownTarget)
	})

	s.Run("authority window must be ordered and not the organization", func() {
		_, err := s.svc.SetAuthority(s.ctx, orgAddr, models.MethodTransfer, s.now, s.now.Add(time.Hour))
		s.Require().Error(err)

		_, err = s.svc.SetAuthority(s.ctx, "delegate", models.MethodTransfer, s.now.Add(time.Hour), s.now)
		s.Require().Error(err)
	})
}

// TestRestrictionsBite verifies restriction flags flow through to transfers.
func (s *ServiceSuite) TestRestrictionsBite() {
	s.Run("entity restriction blocks the member as sender", func() {
		s.SetupTest()
		s.attest("alice", 3, atlantis)
		s.attest("bob", 3, atlantis)
		_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
		s.Require().NoError(err)

		s.mustApply(s.svc.SetEntityRestriction(s.ctx, "alice", true))

		_, err = s.svc.CheckTransfer(s.ctx, ledger, "alice", "alice", "bob", false)
		s.Require().ErrorIs(err, models.ErrSenderRestricted)
	})

	s.Run("global lock blocks supply changes", func() {
		s.SetupTest()
		s.attest("alice", 3, atlantis)
		s.mustApply(s.svc.SetGlobalRestriction(s.ctx, true))

		_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
		s.Require().ErrorIs(err, models.ErrTransfersLocked)
	})

	s.Run("share restriction blocks supply changes from that ledger", func() {
		s.SetupTest()
		s.attest("alice", 3, atlantis)
		s.mustApply(s.svc.SetOrgShareRestriction(s.ctx, ledger, true))

		_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
		s.Require().ErrorIs(err, models.ErrShareRestricted)
	})
}

// TestSubAuthority verifies delegated transfers through a granted window.
func (s *ServiceSuite) TestSubAuthority() {
	s.attest("alice", 3, atlantis)
	s.attest("bob", 3, atlantis)
	_, _, _, err := s.svc.ModifyShareTotalSupply(s.ctx, ledger, "alice", 0, 500)
	s.Require().NoError(err)
	_, _, _, err = s.svc.ModifyShareTotalSupply(s.ctx, ledger, "bob", 0, 500)
	s.Require().NoError(err)

	s.mustApply(s.svc.SetAuthority(s.ctx, "delegate", models.MethodTransferFrom,
		s.now.Add(-time.Hour), s.now.Add(time.Hour)))

	_, err = s.svc.CheckTransfer(s.ctx, ledger, "delegate", "alice", "bob", false)
	s.Require().NoError(err)

	// Outside the window the same grant stops working.
	s.now = s.now.Add(2 * time.Hour)
	_, err = s.svc.CheckTransfer(s.ctx, ledger, "delegate", "alice", "bob", false)
	s.Require().ErrorIs(err, models.ErrAuthorityNotPermitted)

	// A registered sub-authority counts as a registered member.
	registered, err := s.svc.IsRegisteredMember(s.ctx, "delegate")
	s.Require().NoError(err)
	s.True(registered)
}

// TestGovernance verifies the optional governance collaborator.
func (s *ServiceSuite) TestGovernance() {
	s.Run("authorized supply is unapprovable without governance", func() {
		approved, err := s.svc.ModifyAuthorizedSupply(s.ctx, 1_000_000)
		s.Require().NoError(err)
		s.False(approved)
	})

	s.Run("governance approves supply and share registration", func() {
		s.mustApply(s.svc.SetGovernance(s.ctx, approveAll{}))

		approved, err := s.svc.ModifyAuthorizedSupply(s.ctx, 1_000_000)
		s.Require().NoError(err)
		s.True(approved)

		s.mustApply(s.svc.AddOrgShare(s.ctx, "ledger-2"))
		s.True(s.svc.Share("ledger-2").Set)
	})
}

// TestDocuments verifies notarization round trips and the zero-hash guard.
func (s *ServiceSuite) TestDocuments() {
	s.attest("alice", 3, atlantis)
	alice, err := s.svc.GetID(s.ctx, "alice")
	s.Require().NoError(err)

	hash := [32]byte{1, 2, 3}
	s.mustApply(s.svc.SetDocument(s.ctx, alice, hash))

	got, err := s.svc.GetDocumentHash(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(hash, got)

	_, err = s.svc.SetDocument(s.ctx, alice, [32]byte{})
	s.Require().ErrorIs(err, models.ErrZeroDocumentHash)
}

// TestReadAccessors verifies the ledger-facing read surface.
func (s *ServiceSuite) TestReadAccessors() {
	s.attest("alice", 3, atlantis)

	registered, err := s.svc.IsRegisteredMember(s.ctx, "alice")
	s.Require().NoError(err)
	s.False(registered, "never-resolved address is not registered")

	alice, err := s.svc.GetID(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(id.DeriveMemberID("alice"), alice)

	registered, err = s.svc.IsRegisteredMember(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(registered)

	affinity, err := s.svc.GetMemberVerifier(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(1, affinity)

	// The organization seeded itself at construction.
	registered, err = s.svc.IsRegisteredMember(s.ctx, orgAddr)
	s.Require().NoError(err)
	s.True(registered)
}

// --- fakes -------------------------------------------------------------------

type scriptedOracle struct {
	facts map[id.Address]*models.MemberFacts
}

func (o *scriptedOracle) GetID(_ context.Context, addr id.Address) (id.MemberID, error) {
	if _, ok := o.facts[addr]; !ok {
		return id.NilMemberID, nil
	}
	return id.DeriveMemberID(addr), nil
}

func (o *scriptedOracle) GetMember(_ context.Context, addr id.Address) (*models.MemberFacts, error) {
	facts, ok := o.facts[addr]
	if !ok {
		return &models.MemberFacts{}, nil
	}
	return facts, nil
}

func (o *scriptedOracle) GetMembers(ctx context.Context, a, b id.Address) (*models.MemberFacts, *models.MemberFacts, error) {
	factsA, _ := o.GetMember(ctx, a)
	factsB, _ := o.GetMember(ctx, b)
	return factsA, factsB, nil
}

type scriptedDialer struct {
	oracle ports.VerifierOracle
}

func (d *scriptedDialer) Dial(string) (ports.VerifierOracle, error) {
	return d.oracle, nil
}

type switchAuthorizer struct {
	authorized bool
}

func (a *switchAuthorizer) IsAuthorized(context.Context) bool {
	return a.authorized
}

type approveAll struct{}

func (approveAll) ApproveOrgShare(context.Context, id.Address) (bool, error) {
	return true, nil
}

func (approveAll) ApproveAuthorizedSupply(context.Context, uint64) (bool, error) {
	return true, nil
}
