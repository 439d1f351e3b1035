package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"custos/internal/registry/models"
	id "custos/pkg/domain"
)

type MemberStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func (s *MemberStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestMemberStoreSuite(t *testing.T) {
	suite.Run(t, new(MemberStoreSuite))
}

// TestAccounts verifies account round trips and the nil-for-absent contract.
func (s *MemberStoreSuite) TestAccounts() {
	s.Run("stores and retrieves an account", func() {
		memberID := id.DeriveMemberID("alice")
		s.Require().NoError(s.store.Put(s.ctx, &models.MemberAccount{
			ID:               memberID,
			Rating:           4,
			VerifierAffinity: 2,
			Exists:           true,
		}))

		account, err := s.store.Get(s.ctx, memberID)
		s.Require().NoError(err)
		s.Require().NotNil(account)
		s.Equal(id.Rating(4), account.Rating)
		s.Equal(2, account.VerifierAffinity)
	})

	s.Run("unknown member yields nil without error", func() {
		account, err := s.store.Get(s.ctx, id.DeriveMemberID("nobody"))
		s.Require().NoError(err)
		s.Nil(account)
	})

	s.Run("returned accounts are copies", func() {
		memberID := id.DeriveMemberID("bob")
		s.Require().NoError(s.store.Put(s.ctx, &models.MemberAccount{ID: memberID, Exists: true}))

		account, err := s.store.Get(s.ctx, memberID)
		s.Require().NoError(err)
		account.Rating = 7

		again, err := s.store.Get(s.ctx, memberID)
		s.Require().NoError(err)
		s.Equal(id.Rating(0), again.Rating, "mutation outside Put must not stick")
	})
}

// TestAddressMemo verifies the address→identity memo table.
func (s *MemberStoreSuite) TestAddressMemo() {
	s.Run("memoizes and recalls a mapping", func() {
		memberID := id.DeriveMemberID("carol")
		s.Require().NoError(s.store.MapAddress(s.ctx, "carol", memberID))

		got, err := s.store.IDForAddress(s.ctx, "carol")
		s.Require().NoError(err)
		s.Equal(memberID, got)
	})

	s.Run("unknown address yields the nil identity", func() {
		got, err := s.store.IDForAddress(s.ctx, "stranger")
		s.Require().NoError(err)
		s.True(got.IsNil())
	})
}

// TestDocuments verifies notarized hash storage.
func (s *MemberStoreSuite) TestDocuments() {
	memberID := id.DeriveMemberID("dave")
	hash := [32]byte{0xde, 0xad, 0xbe, 0xef}

	got, err := s.store.DocumentHash(s.ctx, memberID)
	s.Require().NoError(err)
	s.Equal([32]byte{}, got, "unset hash is zero")

	s.Require().NoError(s.store.SetDocumentHash(s.ctx, memberID, hash))

	got, err = s.store.DocumentHash(s.ctx, memberID)
	s.Require().NoError(err)
	s.Equal(hash, got)
}
