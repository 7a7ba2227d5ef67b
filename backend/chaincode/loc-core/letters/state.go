package letters

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger"
)

// LetterClass tags letter of credit records on the ledger.
const LetterClass = "org.locnet.letterofcredit"

// Rule is a condition the letter of credit must abide by.
type Rule struct {
	Name    string `json:"name"`
	Wording string `json:"wording"`
}

// ProductDetails describes the goods the letter covers.
type ProductDetails struct {
	ProductType string  `json:"productType"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Evidence is a named hash of a document supporting the process, e.g. an
// invoice or bill of lading.
type Evidence struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// Approval carries one flag per party. The letter advances to Approved only
// when all four are set.
type Approval struct {
	Applicant     bool `json:"applicant"`
	Beneficiary   bool `json:"beneficiary"`
	IssuingBank   bool `json:"issuingBank"`
	ExportingBank bool `json:"exportingBank"`
}

// LetterOfCreditState is the normalized on-ledger form of a letter: every
// party is stored by id only.
type LetterOfCreditState struct {
	ledger.State
	ID              string         `json:"id"`
	ApplicantID     string         `json:"applicantId"`
	BeneficiaryID   string         `json:"beneficiaryId"`
	IssuingBankID   string         `json:"issuingBankId"`
	ExportingBankID string         `json:"exportingBankId"`
	Rules           []Rule         `json:"rules"`
	ProductDetails  ProductDetails `json:"productDetails"`
	Evidence        []Evidence     `json:"evidence"`
	Approval        Approval       `json:"approval"`
	Status          Status         `json:"status"`
}

func decodeLetterState(data []byte) (ledger.Record, error) {
	var ls LetterOfCreditState
	if err := json.Unmarshal(data, &ls); err != nil {
		return nil, errors.Wrapf(ledger.ErrMalformedRecord, "letter of credit: %s", err)
	}
	if ls.ID == "" || ls.ApplicantID == "" || ls.BeneficiaryID == "" {
		return nil, errors.Wrap(ledger.ErrMalformedRecord, "letter of credit record missing required fields")
	}
	return &ls, nil
}
