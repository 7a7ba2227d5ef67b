package chaincode

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/letters"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

// LetterOfCreditContract runs the letter workflow:
//
//	AwaitingApproval -> Approved -> Shipped -> Received -> ReadyForPayment -> Closed
//
// with Rejected as a terminal branch off the approval phase. Every operation
// resolves the caller to a registered participant first and checks their role
// on the specific letter; nothing trusts ambient identity beyond that.
type LetterOfCreditContract struct {
	contractapi.Contract
}

// Get returns a letter to one of its parties.
func (c *LetterOfCreditContract) Get(ctx *TransactionContext, letterID string) (*letters.LetterOfCredit, error) {
	person, err := ctx.CallerIdentity().ToPerson(true)
	if err != nil {
		return nil, err
	}

	letter, err := ctx.LetterList().GetLetter(letterID)
	if err != nil {
		return nil, err
	}

	if !letter.IsParty(person) {
		return nil, errors.Wrapf(ErrNotAParty, "letter %s", letterID)
	}

	return letter, nil
}

// GetAll returns every letter the caller is a party in. Never a global
// listing.
func (c *LetterOfCreditContract) GetAll(ctx *TransactionContext) ([]*letters.LetterOfCredit, error) {
	person, err := ctx.CallerIdentity().ToPerson(true)
	if err != nil {
		return nil, err
	}

	all, err := ctx.LetterList().GetAllLetters()
	if err != nil {
		return nil, err
	}

	mine := []*letters.LetterOfCredit{}
	for _, letter := range all {
		if letter.IsParty(person) {
			mine = append(mine, letter)
		}
	}

	return mine, nil
}

// Apply creates a new letter with the caller as applicant. Applying counts as
// the applicant's approval.
func (c *LetterOfCreditContract) Apply(ctx *TransactionContext, letterID string, beneficiaryID string, rules []letters.Rule, productDetails letters.ProductDetails) error {
	applicant, err := ctx.CallerIdentity().ToCustomer(true)
	if err != nil {
		return err
	}

	beneficiary, err := ctx.ParticipantList().GetCustomer(beneficiaryID)
	if err != nil {
		return err
	}

	letter := letters.NewLetterOfCredit(letterID, applicant, beneficiary, rules, productDetails)

	return ctx.LetterList().AddLetter(letter)
}

// Approve records the caller's approval. The letter moves to Approved on the
// call that completes the quorum of all four parties.
func (c *LetterOfCreditContract) Approve(ctx *TransactionContext, letterID string) error {
	person, err := ctx.CallerIdentity().ToPerson(true)
	if err != nil {
		return err
	}

	letter, err := c.getEditableLetter(ctx, letterID)
	if err != nil {
		return err
	}

	if err := addApproval(letter, person); err != nil {
		return err
	}

	if letter.FullyApproved() {
		letter.Status = letters.Approved
	}

	return ctx.LetterList().UpdateLetter(letter)
}

// Reject terminates the letter while it is still in the approval phase.
func (c *LetterOfCreditContract) Reject(ctx *TransactionContext, letterID string) error {
	person, err := ctx.CallerIdentity().ToPerson(true)
	if err != nil {
		return err
	}

	letter, err := c.getEditableLetter(ctx, letterID)
	if err != nil {
		return err
	}

	if !letter.IsParty(person) {
		return errors.Wrapf(ErrNotAParty, "letter %s", letterID)
	}

	letter.ClearApproval()
	letter.Status = letters.Rejected

	return ctx.LetterList().UpdateLetter(letter)
}

// SuggestRuleChange replaces the rules, which voids everyone else's approval;
// the proposer's own approval is re-recorded.
func (c *LetterOfCreditContract) SuggestRuleChange(ctx *TransactionContext, letterID string, rules []letters.Rule) error {
	person, err := ctx.CallerIdentity().ToPerson(true)
	if err != nil {
		return err
	}

	letter, err := c.getEditableLetter(ctx, letterID)
	if err != nil {
		return err
	}

	if !letter.IsParty(person) {
		return errors.Wrapf(ErrNotAParty, "letter %s", letterID)
	}

	letter.SetRules(rules)
	letter.ClearApproval()
	if err := addApproval(letter, person); err != nil {
		return err
	}

	return ctx.LetterList().UpdateLetter(letter)
}

// MarkAsShipped records shipment by the beneficiary, attaching evidence.
func (c *LetterOfCreditContract) MarkAsShipped(ctx *TransactionContext, letterID string, evidence letters.Evidence) error {
	caller, err := ctx.CallerIdentity().ToCustomer(true)
	if err != nil {
		return err
	}

	letter, err := ctx.LetterList().GetLetter(letterID)
	if err != nil {
		return err
	}

	if !letter.IsBeneficiary(caller) {
		return errors.Wrapf(ErrNotAParty, "caller is not the beneficiary of letter %s", letterID)
	}

	if err := requireTransition(letter, letters.Approved, letters.Shipped); err != nil {
		return err
	}

	letter.Status = letters.Shipped
	letter.AddEvidence(evidence)

	return ctx.LetterList().UpdateLetter(letter)
}

// MarkAsReceived records the applicant accepting the goods.
func (c *LetterOfCreditContract) MarkAsReceived(ctx *TransactionContext, letterID string) error {
	caller, err := ctx.CallerIdentity().ToCustomer(true)
	if err != nil {
		return err
	}

	letter, err := ctx.LetterList().GetLetter(letterID)
	if err != nil {
		return err
	}

	if !letter.IsApplicant(caller) {
		return errors.Wrapf(ErrNotAParty, "caller is not the applicant of letter %s", letterID)
	}

	if err := requireTransition(letter, letters.Shipped, letters.Received); err != nil {
		return err
	}

	letter.Status = letters.Received

	return ctx.LetterList().UpdateLetter(letter)
}

// MarkAsReadyForPayment records the issuing bank clearing the payment.
func (c *LetterOfCreditContract) MarkAsReadyForPayment(ctx *TransactionContext, letterID string) error {
	caller, err := ctx.CallerIdentity().ToBankEmployee(true)
	if err != nil {
		return err
	}

	letter, err := ctx.LetterList().GetLetter(letterID)
	if err != nil {
		return err
	}

	if !letter.IsIssuingBank(caller) {
		return errors.Wrapf(ErrNotAParty, "caller is not the issuing bank of letter %s", letterID)
	}

	if err := requireTransition(letter, letters.Received, letters.ReadyForPayment); err != nil {
		return err
	}

	letter.Status = letters.ReadyForPayment

	return ctx.LetterList().UpdateLetter(letter)
}

// Close settles the letter; only the exporting bank may do so.
func (c *LetterOfCreditContract) Close(ctx *TransactionContext, letterID string) error {
	caller, err := ctx.CallerIdentity().ToBankEmployee(true)
	if err != nil {
		return err
	}

	letter, err := ctx.LetterList().GetLetter(letterID)
	if err != nil {
		return err
	}

	if !letter.IsExportingBank(caller) {
		return errors.Wrapf(ErrNotAParty, "caller is not the exporting bank of letter %s", letterID)
	}

	if err := requireTransition(letter, letters.ReadyForPayment, letters.Closed); err != nil {
		return err
	}

	letter.Status = letters.Closed

	return ctx.LetterList().UpdateLetter(letter)
}

// getEditableLetter loads a letter still open to approval-phase edits.
func (c *LetterOfCreditContract) getEditableLetter(ctx *TransactionContext, letterID string) (*letters.LetterOfCredit, error) {
	letter, err := ctx.LetterList().GetLetter(letterID)
	if err != nil {
		return nil, err
	}

	if letter.Status != letters.AwaitingApproval {
		return nil, errors.Wrapf(ErrNotEditable, "letter %s is %s", letterID, letter.Status)
	}

	return letter, nil
}

// requireTransition checks the letter sits between from (inclusive) and to
// (exclusive) on the forward path. Rejected letters never pass: the check is
// explicit because Rejected's ordinal would otherwise satisfy any >= guard.
func requireTransition(letter *letters.LetterOfCredit, from, to letters.Status) error {
	switch {
	case letter.Status == letters.Rejected:
		return errors.Wrapf(ErrInvalidTransition, "letter %s was rejected", letter.ID)
	case letter.Status < from:
		return errors.Wrapf(ErrInvalidTransition, "letter %s is %s, needs %s", letter.ID, letter.Status, from)
	case letter.Status >= to:
		return errors.Wrapf(ErrInvalidTransition, "letter %s is already %s", letter.ID, letter.Status)
	}
	return nil
}

// addApproval sets the flag for whichever party the person is. An employee of
// a bank on both sides of the letter approves for both sides at once.
func addApproval(letter *letters.LetterOfCredit, person participants.Person) error {
	switch {
	case letter.IsApplicant(person):
		letter.Approval.Applicant = true
	case letter.IsBeneficiary(person):
		letter.Approval.Beneficiary = true
	case letter.IsIssuingBank(person) || letter.IsExportingBank(person):
		if letter.IsIssuingBank(person) {
			letter.Approval.IssuingBank = true
		}
		if letter.IsExportingBank(person) {
			letter.Approval.ExportingBank = true
		}
	default:
		return errors.Wrapf(ErrNotAParty, "letter %s", letter.ID)
	}
	return nil
}
