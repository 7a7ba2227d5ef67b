// Package letters holds the letter of credit record, its status machine data
// and the ledger directory the workflow operates through.
package letters

import (
	"encoding/json"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

// LetterOfCredit is the hydrated, in-memory form of a letter: applicant and
// beneficiary are full customers. The issuing and exporting banks are always
// derived from the party banks and never held independently, so they cannot
// drift from the customers they belong to.
type LetterOfCredit struct {
	ID             string
	Applicant      participants.Customer
	Beneficiary    participants.Customer
	Rules          []Rule
	ProductDetails ProductDetails
	Evidence       []Evidence
	Approval       Approval
	Status         Status
}

// NewLetterOfCredit starts a letter in AwaitingApproval with the applicant's
// approval already given, which is what submitting the application means.
func NewLetterOfCredit(id string, applicant, beneficiary participants.Customer, rules []Rule, productDetails ProductDetails) *LetterOfCredit {
	return &LetterOfCredit{
		ID:             id,
		Applicant:      applicant,
		Beneficiary:    beneficiary,
		Rules:          rules,
		ProductDetails: productDetails,
		Evidence:       []Evidence{},
		Approval:       Approval{Applicant: true},
		Status:         AwaitingApproval,
	}
}

// IssuingBank is the applicant's bank.
func (loc *LetterOfCredit) IssuingBank() participants.Bank {
	return loc.Applicant.Bank
}

// ExportingBank is the beneficiary's bank.
func (loc *LetterOfCredit) ExportingBank() participants.Bank {
	return loc.Beneficiary.Bank
}

// SetRules replaces the rules wholesale.
func (loc *LetterOfCredit) SetRules(rules []Rule) {
	loc.Rules = rules
}

// AddEvidence appends to the evidence trail.
func (loc *LetterOfCredit) AddEvidence(evidence Evidence) {
	loc.Evidence = append(loc.Evidence, evidence)
}

// ClearApproval withdraws every party's approval.
func (loc *LetterOfCredit) ClearApproval() {
	loc.Approval = Approval{}
}

// FullyApproved reports whether all four parties have approved.
func (loc *LetterOfCredit) FullyApproved() bool {
	a := loc.Approval
	return a.Applicant && a.Beneficiary && a.IssuingBank && a.ExportingBank
}

// IsApplicant reports whether the person is the customer who applied.
func (loc *LetterOfCredit) IsApplicant(person participants.Person) bool {
	customer, ok := person.(participants.Customer)
	return ok && customer.ID == loc.Applicant.ID
}

// IsBeneficiary reports whether the person is the customer being paid.
func (loc *LetterOfCredit) IsBeneficiary(person participants.Person) bool {
	customer, ok := person.(participants.Customer)
	return ok && customer.ID == loc.Beneficiary.ID
}

// IsIssuingBank reports whether the person works for the applicant's bank.
func (loc *LetterOfCredit) IsIssuingBank(person participants.Person) bool {
	employee, ok := person.(participants.BankEmployee)
	return ok && employee.Bank.ID == loc.IssuingBank().ID
}

// IsExportingBank reports whether the person works for the beneficiary's bank.
func (loc *LetterOfCredit) IsExportingBank(person participants.Person) bool {
	employee, ok := person.(participants.BankEmployee)
	return ok && employee.Bank.ID == loc.ExportingBank().ID
}

// IsParty reports whether the person holds any of the four roles on this
// letter.
func (loc *LetterOfCredit) IsParty(person participants.Person) bool {
	return loc.IsApplicant(person) || loc.IsBeneficiary(person) || loc.IsIssuingBank(person) || loc.IsExportingBank(person)
}

type jsonLetterOfCredit struct {
	ID             string                `json:"id"`
	Applicant      participants.Customer `json:"applicant"`
	Beneficiary    participants.Customer `json:"beneficiary"`
	IssuingBank    participants.Bank     `json:"issuingBank"`
	ExportingBank  participants.Bank     `json:"exportingBank"`
	Rules          []Rule                `json:"rules"`
	ProductDetails ProductDetails        `json:"productDetails"`
	Evidence       []Evidence            `json:"evidence"`
	Approval       Approval              `json:"approval"`
	Status         Status                `json:"status"`
}

// MarshalJSON includes the derived banks so API consumers see the full party
// set without dereferencing customers themselves.
func (loc *LetterOfCredit) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonLetterOfCredit{
		ID:             loc.ID,
		Applicant:      loc.Applicant,
		Beneficiary:    loc.Beneficiary,
		IssuingBank:    loc.IssuingBank(),
		ExportingBank:  loc.ExportingBank(),
		Rules:          loc.Rules,
		ProductDetails: loc.ProductDetails,
		Evidence:       loc.Evidence,
		Approval:       loc.Approval,
		Status:         loc.Status,
	})
}

// UnmarshalJSON accepts the marshalled form back; the bank fields are
// recomputed from the parties, never trusted from the payload.
func (loc *LetterOfCredit) UnmarshalJSON(data []byte) error {
	var jloc jsonLetterOfCredit
	if err := json.Unmarshal(data, &jloc); err != nil {
		return err
	}

	loc.ID = jloc.ID
	loc.Applicant = jloc.Applicant
	loc.Beneficiary = jloc.Beneficiary
	loc.Rules = jloc.Rules
	loc.ProductDetails = jloc.ProductDetails
	loc.Evidence = jloc.Evidence
	loc.Approval = jloc.Approval
	loc.Status = jloc.Status

	return nil
}
