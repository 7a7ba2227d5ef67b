package chaincode

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/identity"
)

// ParticipantsContract handles joining the network: banks are registered by
// the system identity of their organisation, people register themselves under
// an already-registered bank.
type ParticipantsContract struct {
	contractapi.Contract
}

// RegisterBank creates the Bank for the caller's organisation. The bank id
// comes from the caller's MSP, so an organisation can only ever register
// itself.
func (c *ParticipantsContract) RegisterBank(ctx *TransactionContext, name string) error {
	bank, err := ctx.CallerIdentity().NewBankFromCaller(name)
	if err != nil {
		return err
	}

	return ctx.ParticipantList().AddBank(bank)
}

// RegisterParticipant self-registers the caller as whichever person type
// their certificate role declares, built transiently from their attributes.
func (c *ParticipantsContract) RegisterParticipant(ctx *TransactionContext) error {
	ci := ctx.CallerIdentity()

	role, err := ci.Role()
	if err != nil {
		return err
	}

	switch role {
	case identity.RoleCustomer:
		customer, err := ci.ToCustomer(false)
		if err != nil {
			return err
		}
		return ctx.ParticipantList().AddCustomer(customer)

	case identity.RoleBankEmployee:
		employee, err := ci.ToBankEmployee(false)
		if err != nil {
			return err
		}
		return ctx.ParticipantList().AddBankEmployee(employee)

	default:
		return errors.Wrapf(identity.ErrWrongRole, "cannot register participant with role %q", role)
	}
}
