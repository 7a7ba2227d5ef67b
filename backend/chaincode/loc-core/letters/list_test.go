package letters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger/ledgertest"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/letters"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

func newDirectories(t *testing.T) (*letters.LetterList, *participants.ParticipantList) {
	t.Helper()

	stub := ledgertest.NewStub()
	pl := participants.NewList(stub)

	require.NoError(t, pl.AddBank(dinero))
	require.NoError(t, pl.AddBank(eastwood))
	require.NoError(t, pl.AddCustomer(alice))
	require.NoError(t, pl.AddCustomer(bob))

	return letters.NewList(stub, pl), pl
}

func TestLetterRoundTripHydrates(t *testing.T) {
	ll, _ := newDirectories(t)

	require.NoError(t, ll.AddLetter(newLetter()))

	letter, err := ll.GetLetter("L1")
	require.NoError(t, err)

	assert.Equal(t, alice, letter.Applicant)
	assert.Equal(t, bob, letter.Beneficiary)
	assert.Equal(t, dinero, letter.IssuingBank())
	assert.Equal(t, eastwood, letter.ExportingBank())
	assert.Equal(t, computerRules, letter.Rules)
	assert.Equal(t, letters.AwaitingApproval, letter.Status)
}

func TestAddLetterTwice(t *testing.T) {
	ll, _ := newDirectories(t)

	require.NoError(t, ll.AddLetter(newLetter()))
	require.ErrorIs(t, ll.AddLetter(newLetter()), ledger.ErrAlreadyExists)
}

func TestGetLetterMissing(t *testing.T) {
	ll, _ := newDirectories(t)

	_, err := ll.GetLetter("L404")
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestUpdateLetter(t *testing.T) {
	ll, _ := newDirectories(t)

	letter := newLetter()
	require.ErrorIs(t, ll.UpdateLetter(letter), ledger.ErrNotFound)

	require.NoError(t, ll.AddLetter(letter))

	letter.Status = letters.Shipped
	letter.AddEvidence(letters.Evidence{Name: "invoice", Hash: "abc123"})
	require.NoError(t, ll.UpdateLetter(letter))

	got, err := ll.GetLetter("L1")
	require.NoError(t, err)
	assert.Equal(t, letters.Shipped, got.Status)
	require.Len(t, got.Evidence, 1)
}

func TestGetAllLetters(t *testing.T) {
	ll, _ := newDirectories(t)

	first := newLetter()
	second := letters.NewLetterOfCredit("L2", bob, alice, computerRules, computerOrder)

	require.NoError(t, ll.AddLetter(first))
	require.NoError(t, ll.AddLetter(second))

	all, err := ll.GetAllLetters()
	require.NoError(t, err)
	require.Len(t, all, 2)

	// substrate key order
	assert.Equal(t, "L1", all[0].ID)
	assert.Equal(t, "L2", all[1].ID)
	assert.Equal(t, bob, all[1].Applicant)
	assert.Equal(t, eastwood, all[1].IssuingBank())
}

func TestGetLetterWithUnregisteredParty(t *testing.T) {
	stub := ledgertest.NewStub()
	pl := participants.NewList(stub)
	require.NoError(t, pl.AddBank(dinero))
	require.NoError(t, pl.AddCustomer(alice))

	ll := letters.NewList(stub, pl)
	require.NoError(t, ll.AddLetter(newLetter()))

	_, err := ll.GetLetter("L1")
	require.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Contains(t, err.Error(), "beneficiary")
}
