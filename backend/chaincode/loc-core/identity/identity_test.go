package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/identity"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger/ledgertest"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

type fakeAttrs struct {
	msp   string
	attrs map[string]string
}

func (f *fakeAttrs) GetAttributeValue(name string) (string, bool, error) {
	value, ok := f.attrs[name]
	return value, ok, nil
}

func (f *fakeAttrs) GetMSPID() (string, error) {
	return f.msp, nil
}

var dinero = participants.Bank{ID: "BankOfDinero", Name: "Bank of Dinero"}

func directoryWithBank(t *testing.T) *participants.ParticipantList {
	t.Helper()
	pl := participants.NewList(ledgertest.NewStub())
	require.NoError(t, pl.AddBank(dinero))
	return pl
}

func customerAttrs() *fakeAttrs {
	return &fakeAttrs{
		msp: "BankOfDineroMSP",
		attrs: map[string]string{
			"locnet.role":     identity.RoleCustomer,
			"locnet.username": "alice",
			"forename":        "Alice",
			"surname":         "Hamilton",
			"company":         "QuickFix IT",
		},
	}
}

func TestRole(t *testing.T) {
	ci := identity.New(customerAttrs(), directoryWithBank(t))

	role, err := ci.Role()
	require.NoError(t, err)
	assert.Equal(t, identity.RoleCustomer, role)
	assert.True(t, ci.HasRole(identity.RoleCustomer))
	assert.False(t, ci.HasRole(identity.RoleBankEmployee))
}

func TestTransientCustomerFromAttributes(t *testing.T) {
	ci := identity.New(customerAttrs(), directoryWithBank(t))

	customer, err := ci.ToCustomer(false)
	require.NoError(t, err)

	assert.Equal(t, participants.Customer{
		ID:          "alice",
		Forename:    "Alice",
		Surname:     "Hamilton",
		Bank:        dinero,
		CompanyName: "QuickFix IT",
	}, customer)
}

func TestRegisteredCustomerLookup(t *testing.T) {
	pl := directoryWithBank(t)
	ci := identity.New(customerAttrs(), pl)

	_, err := ci.ToCustomer(true)
	require.ErrorIs(t, err, identity.ErrNotRegistered)

	registered := participants.Customer{ID: "alice", Forename: "Alice", Surname: "Hamilton", Bank: dinero, CompanyName: "QuickFix IT"}
	require.NoError(t, pl.AddCustomer(registered))

	customer, err := ci.ToCustomer(true)
	require.NoError(t, err)
	assert.Equal(t, registered, customer)
}

func TestToCustomerWrongRole(t *testing.T) {
	attrs := customerAttrs()
	attrs.attrs["locnet.role"] = identity.RoleBankEmployee
	ci := identity.New(attrs, directoryWithBank(t))

	_, err := ci.ToCustomer(false)
	require.ErrorIs(t, err, identity.ErrWrongRole)
}

func TestToBankEmployee(t *testing.T) {
	pl := directoryWithBank(t)
	attrs := &fakeAttrs{
		msp: "BankOfDineroMSP",
		attrs: map[string]string{
			"locnet.role":     identity.RoleBankEmployee,
			"locnet.username": "ella",
			"forename":        "Ella",
			"surname":         "Roy",
		},
	}
	ci := identity.New(attrs, pl)

	employee, err := ci.ToBankEmployee(false)
	require.NoError(t, err)
	assert.Equal(t, dinero, employee.Bank)
	assert.Equal(t, "ella", employee.ID)

	person, err := ci.ToPerson(false)
	require.NoError(t, err)
	assert.Equal(t, employee, person)
}

func TestBankForCallerUnregisteredOrg(t *testing.T) {
	attrs := customerAttrs()
	attrs.msp = "UnknownOrgMSP"
	ci := identity.New(attrs, directoryWithBank(t))

	_, err := ci.BankForCaller()
	require.ErrorIs(t, err, identity.ErrBankNotRegistered)
}

func TestNewBankFromCaller(t *testing.T) {
	pl := participants.NewList(ledgertest.NewStub())
	attrs := &fakeAttrs{
		msp:   "EastwoodBankingMSP",
		attrs: map[string]string{"locnet.role": identity.RoleSystem},
	}
	ci := identity.New(attrs, pl)

	bank, err := ci.NewBankFromCaller("Eastwood Banking")
	require.NoError(t, err)
	assert.Equal(t, participants.Bank{ID: "EastwoodBanking", Name: "Eastwood Banking"}, bank)
}

func TestNewBankFromCallerRequiresSystemRole(t *testing.T) {
	ci := identity.New(customerAttrs(), directoryWithBank(t))

	_, err := ci.NewBankFromCaller("Rogue Bank")
	require.ErrorIs(t, err, identity.ErrWrongRole)
}

func TestToPersonUnknownRole(t *testing.T) {
	attrs := &fakeAttrs{msp: "BankOfDineroMSP", attrs: map[string]string{"locnet.role": "auditor"}}
	ci := identity.New(attrs, directoryWithBank(t))

	_, err := ci.ToPerson(true)
	require.ErrorIs(t, err, identity.ErrWrongRole)
}
