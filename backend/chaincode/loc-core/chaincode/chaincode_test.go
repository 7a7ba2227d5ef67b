package chaincode_test

import (
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/stretchr/testify/require"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/chaincode"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/identity"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger/ledgertest"
)

// fakeIdentity satisfies cid.ClientIdentity for the attribute and MSP calls
// the contracts make; anything else panics through the embedded nil.
type fakeIdentity struct {
	cid.ClientIdentity
	msp   string
	attrs map[string]string
}

func (f *fakeIdentity) GetAttributeValue(name string) (string, bool, error) {
	value, ok := f.attrs[name]
	return value, ok, nil
}

func (f *fakeIdentity) GetMSPID() (string, error) {
	return f.msp, nil
}

// network runs both contracts against one shared in-memory world state. Each
// call gets a fresh transaction context, as it would on chain.
type network struct {
	t            *testing.T
	stub         *ledgertest.Stub
	letters      *chaincode.LetterOfCreditContract
	participants *chaincode.ParticipantsContract
}

func newNetwork(t *testing.T) *network {
	return &network{
		t:            t,
		stub:         ledgertest.NewStub(),
		letters:      new(chaincode.LetterOfCreditContract),
		participants: new(chaincode.ParticipantsContract),
	}
}

func (n *network) ctx(msp, role, username string, extra map[string]string) *chaincode.TransactionContext {
	attrs := map[string]string{
		"locnet.role":     role,
		"locnet.username": username,
	}
	for name, value := range extra {
		attrs[name] = value
	}

	ctx := new(chaincode.TransactionContext)
	ctx.SetStub(n.stub)
	ctx.SetClientIdentity(&fakeIdentity{msp: msp, attrs: attrs})
	return ctx
}

func (n *network) asSystem(msp string) *chaincode.TransactionContext {
	return n.ctx(msp, identity.RoleSystem, "admin", nil)
}

func (n *network) asCustomer(msp, username string) *chaincode.TransactionContext {
	return n.ctx(msp, identity.RoleCustomer, username, map[string]string{
		"forename": username, "surname": "Tester", "company": username + " Ltd",
	})
}

func (n *network) asEmployee(msp, username string) *chaincode.TransactionContext {
	return n.ctx(msp, identity.RoleBankEmployee, username, map[string]string{
		"forename": username, "surname": "Banker",
	})
}

const (
	dineroMSP   = "BankOfDineroMSP"
	eastwoodMSP = "EastwoodBankingMSP"
)

// seeded returns a network with both banks and the four usual suspects
// registered: customers alice (Dinero) and bob (Eastwood), employees ella
// (Dinero) and matias (Eastwood).
func seeded(t *testing.T) *network {
	n := newNetwork(t)

	require.NoError(t, n.participants.RegisterBank(n.asSystem(dineroMSP), "Bank of Dinero"))
	require.NoError(t, n.participants.RegisterBank(n.asSystem(eastwoodMSP), "Eastwood Banking"))

	require.NoError(t, n.participants.RegisterParticipant(n.asCustomer(dineroMSP, "alice")))
	require.NoError(t, n.participants.RegisterParticipant(n.asCustomer(eastwoodMSP, "bob")))
	require.NoError(t, n.participants.RegisterParticipant(n.asEmployee(dineroMSP, "ella")))
	require.NoError(t, n.participants.RegisterParticipant(n.asEmployee(eastwoodMSP, "matias")))

	return n
}
