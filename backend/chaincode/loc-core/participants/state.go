package participants

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger"
)

// Class tags for the participant record variants.
const (
	BankClass         = "org.locnet.bank"
	CustomerClass     = "org.locnet.customer"
	BankEmployeeClass = "org.locnet.bankemployee"
)

// BankState is the on-ledger form of a Bank. Banks carry no references so the
// stored and hydrated forms only differ by the record base.
type BankState struct {
	ledger.State
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewBankState builds the record for a bank, keyed by its id.
func NewBankState(id, name string) *BankState {
	return &BankState{
		State: ledger.NewState(BankClass, id),
		ID:    id,
		Name:  name,
	}
}

// CustomerState is the on-ledger form of a Customer. The bank is stored as an
// id only and resolved on read.
type CustomerState struct {
	ledger.State
	ID          string `json:"id"`
	Forename    string `json:"forename"`
	Surname     string `json:"surname"`
	BankID      string `json:"bankId"`
	CompanyName string `json:"companyName"`
}

// NewCustomerState builds the record for a customer, keyed by its id.
func NewCustomerState(id, forename, surname, bankID, companyName string) *CustomerState {
	return &CustomerState{
		State:       ledger.NewState(CustomerClass, id),
		ID:          id,
		Forename:    forename,
		Surname:     surname,
		BankID:      bankID,
		CompanyName: companyName,
	}
}

// BankEmployeeState is the on-ledger form of a BankEmployee, bank stored as an
// id only.
type BankEmployeeState struct {
	ledger.State
	ID       string `json:"id"`
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
	BankID   string `json:"bankId"`
}

// NewBankEmployeeState builds the record for a bank employee, keyed by its id.
func NewBankEmployeeState(id, forename, surname, bankID string) *BankEmployeeState {
	return &BankEmployeeState{
		State:    ledger.NewState(BankEmployeeClass, id),
		ID:       id,
		Forename: forename,
		Surname:  surname,
		BankID:   bankID,
	}
}

func decodeBankState(data []byte) (ledger.Record, error) {
	var bs BankState
	if err := json.Unmarshal(data, &bs); err != nil {
		return nil, errors.Wrapf(ledger.ErrMalformedRecord, "bank: %s", err)
	}
	if bs.ID == "" || bs.Name == "" {
		return nil, errors.Wrap(ledger.ErrMalformedRecord, "bank record missing required fields")
	}
	return &bs, nil
}

func decodeCustomerState(data []byte) (ledger.Record, error) {
	var cs CustomerState
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, errors.Wrapf(ledger.ErrMalformedRecord, "customer: %s", err)
	}
	if cs.ID == "" || cs.BankID == "" {
		return nil, errors.Wrap(ledger.ErrMalformedRecord, "customer record missing required fields")
	}
	return &cs, nil
}

func decodeBankEmployeeState(data []byte) (ledger.Record, error) {
	var bes BankEmployeeState
	if err := json.Unmarshal(data, &bes); err != nil {
		return nil, errors.Wrapf(ledger.ErrMalformedRecord, "bank employee: %s", err)
	}
	if bes.ID == "" || bes.BankID == "" {
		return nil, errors.Wrap(ledger.ErrMalformedRecord, "bank employee record missing required fields")
	}
	return &bes, nil
}
