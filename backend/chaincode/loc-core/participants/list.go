package participants

import (
	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger"
)

// ListName scopes every participant record in the world state.
const ListName = "org.locnet.participantslist"

// ParticipantList is the directory of banks, customers and bank employees.
// Reads hydrate bank references in the same call.
type ParticipantList struct {
	list *ledger.StateList
}

// NewList builds the directory over the given stub.
func NewList(stub ledger.Stub) *ParticipantList {
	list := ledger.NewStateList(stub, ListName)
	list.Use(BankClass, decodeBankState)
	list.Use(CustomerClass, decodeCustomerState)
	list.Use(BankEmployeeClass, decodeBankEmployeeState)

	return &ParticipantList{list: list}
}

// AddBank stores a new bank.
func (pl *ParticipantList) AddBank(bank Bank) error {
	if err := pl.list.Add(NewBankState(bank.ID, bank.Name)); err != nil {
		return errors.WithMessage(err, "failed to add bank")
	}
	return nil
}

// GetBank reads a bank by id.
func (pl *ParticipantList) GetBank(id string) (Bank, error) {
	record, err := pl.list.Get(id)
	if err != nil {
		return Bank{}, errors.WithMessage(err, "failed to get bank")
	}

	bs, ok := record.(*BankState)
	if !ok {
		return Bank{}, errors.Errorf("participant %q is not a bank", id)
	}

	return Bank{ID: bs.ID, Name: bs.Name}, nil
}

// AddCustomer stores a new customer. Only the bank id travels to the ledger.
func (pl *ParticipantList) AddCustomer(customer Customer) error {
	state := NewCustomerState(customer.ID, customer.Forename, customer.Surname, customer.Bank.ID, customer.CompanyName)
	if err := pl.list.Add(state); err != nil {
		return errors.WithMessage(err, "failed to add customer")
	}
	return nil
}

// GetCustomer reads a customer by id, resolving its bank.
func (pl *ParticipantList) GetCustomer(id string) (Customer, error) {
	record, err := pl.list.Get(id)
	if err != nil {
		return Customer{}, errors.WithMessage(err, "failed to get customer")
	}

	cs, ok := record.(*CustomerState)
	if !ok {
		return Customer{}, errors.Errorf("participant %q is not a customer", id)
	}

	bank, err := pl.GetBank(cs.BankID)
	if err != nil {
		return Customer{}, errors.WithMessagef(err, "failed to resolve bank for customer %q", id)
	}

	return Customer{
		ID:          cs.ID,
		Forename:    cs.Forename,
		Surname:     cs.Surname,
		Bank:        bank,
		CompanyName: cs.CompanyName,
	}, nil
}

// AddBankEmployee stores a new bank employee. Only the bank id travels to the
// ledger.
func (pl *ParticipantList) AddBankEmployee(employee BankEmployee) error {
	state := NewBankEmployeeState(employee.ID, employee.Forename, employee.Surname, employee.Bank.ID)
	if err := pl.list.Add(state); err != nil {
		return errors.WithMessage(err, "failed to add bank employee")
	}
	return nil
}

// GetBankEmployee reads a bank employee by id, resolving its bank.
func (pl *ParticipantList) GetBankEmployee(id string) (BankEmployee, error) {
	record, err := pl.list.Get(id)
	if err != nil {
		return BankEmployee{}, errors.WithMessage(err, "failed to get bank employee")
	}

	bes, ok := record.(*BankEmployeeState)
	if !ok {
		return BankEmployee{}, errors.Errorf("participant %q is not a bank employee", id)
	}

	bank, err := pl.GetBank(bes.BankID)
	if err != nil {
		return BankEmployee{}, errors.WithMessagef(err, "failed to resolve bank for employee %q", id)
	}

	return BankEmployee{
		ID:       bes.ID,
		Forename: bes.Forename,
		Surname:  bes.Surname,
		Bank:     bank,
	}, nil
}
