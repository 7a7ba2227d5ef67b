// Package identity turns the verified attributes of the calling client into
// typed participants. Certificates are issued and verified outside the
// network; by the time this code runs the attributes are trusted.
package identity

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

// Roles carried in the locnet.role certificate attribute.
const (
	RoleCustomer     = "customer"
	RoleBankEmployee = "bankemployee"
	RoleSystem       = "system"
)

const (
	roleAttr     = "locnet.role"
	usernameAttr = "locnet.username"
	forenameAttr = "forename"
	surnameAttr  = "surname"
	companyAttr  = "company"

	mspSuffix = "MSP"
)

// Resolution errors. Matched with errors.Is by the contracts and mapped to
// stable messages at the edge.
var (
	// ErrWrongRole - the caller's role attribute does not allow the operation.
	ErrWrongRole = errors.New("invalid client identity role")

	// ErrNotRegistered - the caller's role checks out but no participant has
	// been registered under their username.
	ErrNotRegistered = errors.New("no participant registered for caller")

	// ErrBankNotRegistered - the caller's organisation has no Bank on the
	// network yet.
	ErrBankNotRegistered = errors.New("no bank registered for caller's organisation")
)

// Attributes is the slice of cid.ClientIdentity the resolver reads.
type Attributes interface {
	GetAttributeValue(attrName string) (string, bool, error)
	GetMSPID() (string, error)
}

// ClientIdentity resolves the caller against the participant directory.
type ClientIdentity struct {
	attrs        Attributes
	participants *participants.ParticipantList
}

// New wraps the caller's attribute source.
func New(attrs Attributes, pl *participants.ParticipantList) *ClientIdentity {
	return &ClientIdentity{attrs: attrs, participants: pl}
}

// Role returns the caller's declared role attribute.
func (ci *ClientIdentity) Role() (string, error) {
	return ci.attribute(roleAttr)
}

// HasRole reports whether the caller declared the given role.
func (ci *ClientIdentity) HasRole(role string) bool {
	actual, err := ci.Role()
	return err == nil && actual == role
}

// ToPerson resolves the caller as whichever person type their role declares.
func (ci *ClientIdentity) ToPerson(registered bool) (participants.Person, error) {
	role, err := ci.Role()
	if err != nil {
		return nil, err
	}

	switch role {
	case RoleCustomer:
		return ci.ToCustomer(registered)
	case RoleBankEmployee:
		return ci.ToBankEmployee(registered)
	default:
		return nil, errors.Wrapf(ErrWrongRole, "cannot resolve role %q as a person", role)
	}
}

// ToCustomer resolves the caller as a Customer. With registered set the
// customer is looked up by username; without it a transient customer is built
// straight from the attributes, which is only meaningful during
// self-registration.
func (ci *ClientIdentity) ToCustomer(registered bool) (participants.Customer, error) {
	if !ci.HasRole(RoleCustomer) {
		role, _ := ci.Role()
		return participants.Customer{}, errors.Wrapf(ErrWrongRole, "caller has role %q, want %q", role, RoleCustomer)
	}

	username, err := ci.attribute(usernameAttr)
	if err != nil {
		return participants.Customer{}, err
	}

	if registered {
		customer, err := ci.participants.GetCustomer(username)
		if err != nil {
			return participants.Customer{}, errors.Wrapf(ErrNotRegistered, "no customer for user %q", username)
		}
		return customer, nil
	}

	bank, err := ci.BankForCaller()
	if err != nil {
		return participants.Customer{}, err
	}

	forename, _ := ci.optionalAttribute(forenameAttr)
	surname, _ := ci.optionalAttribute(surnameAttr)
	company, _ := ci.optionalAttribute(companyAttr)

	return participants.Customer{
		ID:          username,
		Forename:    forename,
		Surname:     surname,
		Bank:        bank,
		CompanyName: company,
	}, nil
}

// ToBankEmployee resolves the caller as a BankEmployee, with the same
// registered/transient split as ToCustomer.
func (ci *ClientIdentity) ToBankEmployee(registered bool) (participants.BankEmployee, error) {
	if !ci.HasRole(RoleBankEmployee) {
		role, _ := ci.Role()
		return participants.BankEmployee{}, errors.Wrapf(ErrWrongRole, "caller has role %q, want %q", role, RoleBankEmployee)
	}

	username, err := ci.attribute(usernameAttr)
	if err != nil {
		return participants.BankEmployee{}, err
	}

	if registered {
		employee, err := ci.participants.GetBankEmployee(username)
		if err != nil {
			return participants.BankEmployee{}, errors.Wrapf(ErrNotRegistered, "no bank employee for user %q", username)
		}
		return employee, nil
	}

	bank, err := ci.BankForCaller()
	if err != nil {
		return participants.BankEmployee{}, err
	}

	forename, _ := ci.optionalAttribute(forenameAttr)
	surname, _ := ci.optionalAttribute(surnameAttr)

	return participants.BankEmployee{
		ID:       username,
		Forename: forename,
		Surname:  surname,
		Bank:     bank,
	}, nil
}

// BankForCaller resolves the Bank registered for the caller's organisation.
func (ci *ClientIdentity) BankForCaller() (participants.Bank, error) {
	bankID, err := ci.organisationID()
	if err != nil {
		return participants.Bank{}, err
	}

	bank, err := ci.participants.GetBank(bankID)
	if err != nil {
		return participants.Bank{}, errors.Wrapf(ErrBankNotRegistered, "no bank with id %q", bankID)
	}

	return bank, nil
}

// NewBankFromCaller builds a Bank for the caller's organisation. Reserved for
// the system role; the bank id is taken from the issuing MSP, not the request.
func (ci *ClientIdentity) NewBankFromCaller(name string) (participants.Bank, error) {
	if !ci.HasRole(RoleSystem) {
		role, _ := ci.Role()
		return participants.Bank{}, errors.Wrapf(ErrWrongRole, "caller has role %q, want %q", role, RoleSystem)
	}

	bankID, err := ci.organisationID()
	if err != nil {
		return participants.Bank{}, err
	}

	return participants.Bank{ID: bankID, Name: name}, nil
}

func (ci *ClientIdentity) organisationID() (string, error) {
	mspID, err := ci.attrs.GetMSPID()
	if err != nil {
		return "", errors.Wrap(err, "failed to read caller MSP id")
	}

	return strings.TrimSuffix(mspID, mspSuffix), nil
}

func (ci *ClientIdentity) attribute(name string) (string, error) {
	value, found, err := ci.attrs.GetAttributeValue(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read attribute %q", name)
	}
	if !found || value == "" {
		return "", errors.Errorf("caller certificate carries no %q attribute", name)
	}
	return value, nil
}

func (ci *ClientIdentity) optionalAttribute(name string) (string, error) {
	value, _, err := ci.attrs.GetAttributeValue(name)
	return value, err
}
