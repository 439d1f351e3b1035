package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	"custos/internal/registry/ports/mocks"
	"custos/internal/registry/store/member"
	id "custos/pkg/domain"
)

// =============================================================================
// Identity Resolver Test Suite
// =============================================================================

type ResolverSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	members  *member.MemoryStore
	verifier *verifierListStub
	auth     *authorityStub
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.members = member.New()
	s.verifier = &verifierListStub{}
	s.auth = &authorityStub{
		orgAddress: "org",
		orgID:      id.DeriveMemberID("org"),
		grants:     map[id.Address]*models.AuthorityGrant{},
	}
	resolver, err := New(s.members, s.verifier, s.auth)
	s.Require().NoError(err)
	s.resolver = resolver
}

// reset rebuilds the fixture; subtests that register verifiers call it so one
// subtest's oracles never leak into the next scan.
func (s *ResolverSuite) reset() {
	s.SetupTest()
}

// addVerifier appends an oracle slot and returns its index and mock.
func (s *ResolverSuite) addVerifier(restricted bool) (int, *mocks.MockVerifierOracle) {
	oracle := mocks.NewMockVerifierOracle(s.ctrl)
	index := len(s.verifier.refs) + 1
	s.verifier.refs = append(s.verifier.refs, ports.VerifierRef{
		Index:  index,
		Entry:  models.VerifierEntry{Key: "stub", Restricted: restricted},
		Oracle: oracle,
	})
	return index, oracle
}

func (s *ResolverSuite) TestConstructorGuards() {
	s.Run("nil member store returns error", func() {
		_, err := New(nil, s.verifier, s.auth)
		s.Require().Error(err)
	})

	s.Run("nil verifier directory returns error", func() {
		_, err := New(s.members, nil, s.auth)
		s.Require().Error(err)
	})

	s.Run("nil authority directory returns error", func() {
		_, err := New(s.members, s.verifier, nil)
		s.Require().Error(err)
	})
}

// TestAuthorityResolution verifies that authority addresses short-circuit to
// the organization identity before any oracle is consulted.
func (s *ResolverSuite) TestAuthorityResolution() {
	s.Run("sub-authority address resolves to the organization", func() {
		s.auth.grants["delegate"] = &models.AuthorityGrant{Address: "delegate"}

		got, err := s.resolver.Resolve(s.ctx, "delegate")
		s.Require().NoError(err)
		s.Equal(s.auth.orgID, got)
	})

	s.Run("restricted sub-authority fails resolution", func() {
		s.auth.grants["banned"] = &models.AuthorityGrant{Address: "banned", Restricted: true}

		_, err := s.resolver.Resolve(s.ctx, "banned")
		s.Require().ErrorIs(err, models.ErrRestrictedAuthority)
	})
}

// TestScan verifies first-time resolution through the ordered verifier list.
func (s *ResolverSuite) TestScan() {
	s.Run("unknown address with no verifiers fails", func() {
		s.reset()
		_, err := s.resolver.Resolve(s.ctx, "nobody")
		s.Require().ErrorIs(err, models.ErrAddressNotRegistered)
	})

	s.Run("first attesting verifier creates the account and memoizes", func() {
		s.reset()
		index, oracle := s.addVerifier(false)
		alice := id.DeriveMemberID("alice-identity")
		oracle.EXPECT().GetID(gomock.Any(), id.Address("alice")).Return(alice, nil)

		got, err := s.resolver.Resolve(s.ctx, "alice")
		s.Require().NoError(err)
		s.Equal(alice, got)

		account, err := s.members.Get(s.ctx, alice)
		s.Require().NoError(err)
		s.Require().NotNil(account)
		s.Equal(index, account.VerifierAffinity)

		memo, err := s.members.IDForAddress(s.ctx, "alice")
		s.Require().NoError(err)
		s.Equal(alice, memo)
	})

	s.Run("memoized resolution is idempotent without further oracle calls", func() {
		s.reset()
		_, oracle := s.addVerifier(false)
		bob := id.DeriveMemberID("bob-identity")
		oracle.EXPECT().GetID(gomock.Any(), id.Address("bob")).Return(bob, nil).Times(1)

		first, err := s.resolver.Resolve(s.ctx, "bob")
		s.Require().NoError(err)
		second, err := s.resolver.Resolve(s.ctx, "bob")
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("restricted verifiers are skipped", func() {
		s.reset()
		_, restricted := s.addVerifier(true)
		_, oracle := s.addVerifier(false)
		carol := id.DeriveMemberID("carol-identity")
		restricted.EXPECT().GetID(gomock.Any(), gomock.Any()).Times(0)
		oracle.EXPECT().GetID(gomock.Any(), id.Address("carol")).Return(carol, nil)

		got, err := s.resolver.Resolve(s.ctx, "carol")
		s.Require().NoError(err)
		s.Equal(carol, got)
	})

	s.Run("failing oracle does not block resolution through the next", func() {
		s.reset()
		_, broken := s.addVerifier(false)
		_, oracle := s.addVerifier(false)
		dave := id.DeriveMemberID("dave-identity")
		broken.EXPECT().GetID(gomock.Any(), id.Address("dave")).Return(id.NilMemberID, errors.New("oracle down"))
		oracle.EXPECT().GetID(gomock.Any(), id.Address("dave")).Return(dave, nil)

		got, err := s.resolver.Resolve(s.ctx, "dave")
		s.Require().NoError(err)
		s.Equal(dave, got)
	})

	s.Run("identity colliding with the organization is ignored", func() {
		s.reset()
		_, oracle := s.addVerifier(false)
		oracle.EXPECT().GetID(gomock.Any(), id.Address("imposter")).Return(s.auth.orgID, nil)

		_, err := s.resolver.Resolve(s.ctx, "imposter")
		s.Require().ErrorIs(err, models.ErrAddressNotRegistered)
	})

	s.Run("mismatched affinity keeps scanning and the recorded verifier wins", func() {
		s.reset()
		_, first := s.addVerifier(false)
		secondIndex, second := s.addVerifier(false)
		erin := id.DeriveMemberID("erin-identity")
		s.Require().NoError(s.members.Put(s.ctx, &models.MemberAccount{
			ID:               erin,
			VerifierAffinity: secondIndex,
			Exists:           true,
		}))
		first.EXPECT().GetID(gomock.Any(), id.Address("erin")).Return(erin, nil)
		second.EXPECT().GetID(gomock.Any(), id.Address("erin")).Return(erin, nil)

		got, err := s.resolver.Resolve(s.ctx, "erin")
		s.Require().NoError(err)
		s.Equal(erin, got)

		account, err := s.members.Get(s.ctx, erin)
		s.Require().NoError(err)
		s.Equal(secondIndex, account.VerifierAffinity, "recorded affinity must survive the scan")
	})
}

// TestReconfirm verifies the restricted-affinity path: once the recorded
// verifier is restricted, another verifier must attest the identical identity.
func (s *ResolverSuite) TestReconfirm() {
	s.Run("another verifier attesting the same identity refreshes affinity", func() {
		s.reset()
		firstIndex, first := s.addVerifier(false)
		secondIndex, second := s.addVerifier(false)
		frank := id.DeriveMemberID("frank-identity")
		first.EXPECT().GetID(gomock.Any(), id.Address("frank")).Return(frank, nil)

		_, err := s.resolver.Resolve(s.ctx, "frank")
		s.Require().NoError(err)

		s.verifier.refs[firstIndex-1].Entry.Restricted = true
		second.EXPECT().GetID(gomock.Any(), id.Address("frank")).Return(frank, nil)

		got, err := s.resolver.Resolve(s.ctx, "frank")
		s.Require().NoError(err)
		s.Equal(frank, got)

		account, err := s.members.Get(s.ctx, frank)
		s.Require().NoError(err)
		s.Equal(secondIndex, account.VerifierAffinity)
	})

	s.Run("no corroborating verifier fails with restricted verifier", func() {
		s.reset()
		firstIndex, first := s.addVerifier(false)
		_, second := s.addVerifier(false)
		grace := id.DeriveMemberID("grace-identity")
		first.EXPECT().GetID(gomock.Any(), id.Address("grace")).Return(grace, nil)

		_, err := s.resolver.Resolve(s.ctx, "grace")
		s.Require().NoError(err)

		s.verifier.refs[firstIndex-1].Entry.Restricted = true
		second.EXPECT().GetID(gomock.Any(), id.Address("grace")).Return(id.NilMemberID, nil)

		_, err = s.resolver.Resolve(s.ctx, "grace")
		s.Require().ErrorIs(err, models.ErrVerifierRestricted)
	})

	s.Run("custodian accounts bypass reconfirmation entirely", func() {
		s.reset()
		custodian := id.DeriveMemberID("custodian-identity")
		s.Require().NoError(s.members.Put(s.ctx, &models.MemberAccount{
			ID:        custodian,
			Custodian: true,
			Exists:    true,
		}))
		s.Require().NoError(s.members.MapAddress(s.ctx, "custodian", custodian))

		got, err := s.resolver.Resolve(s.ctx, "custodian")
		s.Require().NoError(err)
		s.Equal(custodian, got)
	})
}

// --- stubs -------------------------------------------------------------------

type verifierListStub struct {
	refs []ports.VerifierRef
}

func (v *verifierListStub) Verifiers() []ports.VerifierRef {
	return v.refs
}

func (v *verifierListStub) Verifier(index int) (ports.VerifierRef, bool) {
	if index < 1 || index > len(v.refs) {
		return ports.VerifierRef{}, false
	}
	return v.refs[index-1], true
}

type authorityStub struct {
	orgAddress id.Address
	orgID      id.MemberID
	grants     map[id.Address]*models.AuthorityGrant
}

func (a *authorityStub) OrgID() id.MemberID     { return a.orgID }
func (a *authorityStub) OrgAddress() id.Address { return a.orgAddress }

func (a *authorityStub) Grant(addr id.Address) (*models.AuthorityGrant, bool) {
	grant, ok := a.grants[addr]
	return grant, ok
}

func (a *authorityStub) IsAuthorityID(memberID id.MemberID) bool {
	if memberID == a.orgID {
		return true
	}
	for _, grant := range a.grants {
		if id.DeriveMemberID(grant.Address) == memberID {
			return true
		}
	}
	return false
}
