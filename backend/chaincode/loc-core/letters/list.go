package letters

import (
	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/ledger"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

// ListName scopes every letter of credit record in the world state.
const ListName = "org.locnet.letterofcreditlist"

// LetterList is the letter directory. Writes normalize the hydrated letter
// down to party ids; reads resolve the ids back through the participant
// directory, one lookup per party.
type LetterList struct {
	list         *ledger.StateList
	participants *participants.ParticipantList
}

// NewList builds the directory over the given stub, hydrating through the
// given participant directory.
func NewList(stub ledger.Stub, pl *participants.ParticipantList) *LetterList {
	list := ledger.NewStateList(stub, ListName)
	list.Use(LetterClass, decodeLetterState)

	return &LetterList{list: list, participants: pl}
}

// AddLetter stores a new letter.
func (ll *LetterList) AddLetter(letter *LetterOfCredit) error {
	if err := ll.list.Add(toState(letter)); err != nil {
		return errors.WithMessage(err, "failed to add letter")
	}
	return nil
}

// GetLetter reads a letter by id, resolving both parties.
func (ll *LetterList) GetLetter(letterID string) (*LetterOfCredit, error) {
	record, err := ll.list.Get(letterID)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get letter state")
	}

	ls, ok := record.(*LetterOfCreditState)
	if !ok {
		return nil, errors.Errorf("state %q is not a letter of credit", letterID)
	}

	return ll.hydrate(ls)
}

// GetAllLetters reads every letter in the directory. No caching: n letters
// cost 2n participant lookups.
func (ll *LetterList) GetAllLetters() ([]*LetterOfCredit, error) {
	it, err := ll.list.All()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get all letters")
	}
	defer it.Close()

	var result []*LetterOfCredit

	for it.HasNext() {
		_, record, err := it.Next()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to get all letters")
		}

		ls, ok := record.(*LetterOfCreditState)
		if !ok {
			return nil, errors.Errorf("state %q is not a letter of credit", record.GetKey())
		}

		letter, err := ll.hydrate(ls)
		if err != nil {
			return nil, err
		}

		result = append(result, letter)
	}

	return result, nil
}

// UpdateLetter overwrites a letter that already exists.
func (ll *LetterList) UpdateLetter(letter *LetterOfCredit) error {
	if err := ll.list.Update(toState(letter)); err != nil {
		return errors.WithMessage(err, "failed to update letter")
	}
	return nil
}

func toState(letter *LetterOfCredit) *LetterOfCreditState {
	return &LetterOfCreditState{
		State:           ledger.NewState(LetterClass, letter.ID),
		ID:              letter.ID,
		ApplicantID:     letter.Applicant.ID,
		BeneficiaryID:   letter.Beneficiary.ID,
		IssuingBankID:   letter.IssuingBank().ID,
		ExportingBankID: letter.ExportingBank().ID,
		Rules:           letter.Rules,
		ProductDetails:  letter.ProductDetails,
		Evidence:        letter.Evidence,
		Approval:        letter.Approval,
		Status:          letter.Status,
	}
}

func (ll *LetterList) hydrate(ls *LetterOfCreditState) (*LetterOfCredit, error) {
	applicant, err := ll.participants.GetCustomer(ls.ApplicantID)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to resolve applicant of letter %q", ls.ID)
	}

	beneficiary, err := ll.participants.GetCustomer(ls.BeneficiaryID)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to resolve beneficiary of letter %q", ls.ID)
	}

	return &LetterOfCredit{
		ID:             ls.ID,
		Applicant:      applicant,
		Beneficiary:    beneficiary,
		Rules:          ls.Rules,
		ProductDetails: ls.ProductDetails,
		Evidence:       ls.Evidence,
		Approval:       ls.Approval,
		Status:         ls.Status,
	}, nil
}
