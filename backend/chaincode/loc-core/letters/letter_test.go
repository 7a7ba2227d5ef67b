package letters_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/letters"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

var (
	dinero   = participants.Bank{ID: "BankOfDinero", Name: "Bank of Dinero"}
	eastwood = participants.Bank{ID: "EastwoodBanking", Name: "Eastwood Banking"}

	alice = participants.Customer{ID: "alice", Forename: "Alice", Surname: "Hamilton", Bank: dinero, CompanyName: "QuickFix IT"}
	bob   = participants.Customer{ID: "bob", Forename: "Bob", Surname: "Appleton", Bank: eastwood, CompanyName: "Conga Computers"}

	ella   = participants.BankEmployee{ID: "ella", Forename: "Ella", Surname: "Roy", Bank: dinero}
	matias = participants.BankEmployee{ID: "matias", Forename: "Matias", Surname: "Duarte", Bank: eastwood}

	computerRules = []letters.Rule{{Name: "listOfGoods", Wording: "1000 computers"}}
	computerOrder = letters.ProductDetails{ProductType: "computer", Quantity: 1000, UnitPrice: 450}
)

func newLetter() *letters.LetterOfCredit {
	return letters.NewLetterOfCredit("L1", alice, bob, computerRules, computerOrder)
}

func TestNewLetterDefaults(t *testing.T) {
	letter := newLetter()

	assert.Equal(t, letters.AwaitingApproval, letter.Status)
	assert.Equal(t, letters.Approval{Applicant: true}, letter.Approval)
	assert.Empty(t, letter.Evidence)
	assert.Equal(t, dinero, letter.IssuingBank())
	assert.Equal(t, eastwood, letter.ExportingBank())
}

func TestFullyApproved(t *testing.T) {
	letter := newLetter()
	assert.False(t, letter.FullyApproved())

	letter.Approval.Beneficiary = true
	letter.Approval.IssuingBank = true
	assert.False(t, letter.FullyApproved())

	letter.Approval.ExportingBank = true
	assert.True(t, letter.FullyApproved())

	letter.ClearApproval()
	assert.False(t, letter.FullyApproved())
	assert.Equal(t, letters.Approval{}, letter.Approval)
}

func TestPartyChecks(t *testing.T) {
	letter := newLetter()

	assert.True(t, letter.IsApplicant(alice))
	assert.False(t, letter.IsApplicant(bob))
	assert.False(t, letter.IsApplicant(ella))

	assert.True(t, letter.IsBeneficiary(bob))
	assert.False(t, letter.IsBeneficiary(alice))

	assert.True(t, letter.IsIssuingBank(ella))
	assert.False(t, letter.IsIssuingBank(matias))
	assert.False(t, letter.IsIssuingBank(alice))

	assert.True(t, letter.IsExportingBank(matias))
	assert.False(t, letter.IsExportingBank(ella))

	for _, party := range []participants.Person{alice, bob, ella, matias} {
		assert.True(t, letter.IsParty(party))
	}

	stranger := participants.Customer{ID: "carl", Bank: dinero}
	assert.False(t, letter.IsParty(stranger))
}

func TestSameBankBothSides(t *testing.T) {
	bobAtDinero := bob
	bobAtDinero.Bank = dinero
	letter := letters.NewLetterOfCredit("L2", alice, bobAtDinero, computerRules, computerOrder)

	assert.True(t, letter.IsIssuingBank(ella))
	assert.True(t, letter.IsExportingBank(ella))
}

func TestEvidenceTrail(t *testing.T) {
	letter := newLetter()

	letter.AddEvidence(letters.Evidence{Name: "invoice", Hash: "abc123"})
	letter.AddEvidence(letters.Evidence{Name: "billOfLading", Hash: "def456"})

	require.Len(t, letter.Evidence, 2)
	assert.Equal(t, "invoice", letter.Evidence[0].Name)
}

func TestLetterJSONRoundTrip(t *testing.T) {
	letter := newLetter()
	letter.Status = letters.Shipped
	letter.AddEvidence(letters.Evidence{Name: "invoice", Hash: "abc123"})

	data, err := json.Marshal(letter)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"issuingBank":{"id":"BankOfDinero"`)
	assert.Contains(t, string(data), `"status":"SHIPPED"`)

	var decoded letters.LetterOfCredit
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, letter, &decoded)
}

func TestStatusWireNames(t *testing.T) {
	cases := map[letters.Status]string{
		letters.AwaitingApproval: "AWAITING_APPROVAL",
		letters.Approved:         "APPROVED",
		letters.Shipped:          "SHIPPED",
		letters.Received:         "RECEIVED",
		letters.ReadyForPayment:  "READY_FOR_PAYMENT",
		letters.Closed:           "CLOSED",
		letters.Rejected:         "REJECTED",
	}

	for status, name := range cases {
		assert.Equal(t, name, status.String())

		parsed, err := letters.ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := letters.ParseStatus("LOST_AT_SEA")
	require.Error(t, err)

	_, err = json.Marshal(letters.Status(42))
	require.Error(t, err)
}
