// Package participants holds the people and institutions on the network:
// banks, their employees, and the customers applying for letters of credit.
package participants

// Bank is a banking corporation. Its id is the organisation id of the MSP
// that registered it; immutable once created.
type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Person is either a Customer or a BankEmployee, hydrated with its Bank.
// The letter authorization checks type-switch on the two concrete forms.
type Person interface {
	isPerson()
}

// Customer is a member of the public who uses a bank.
type Customer struct {
	ID          string `json:"id"`
	Forename    string `json:"forename"`
	Surname     string `json:"surname"`
	Bank        Bank   `json:"bank"`
	CompanyName string `json:"companyName"`
}

func (Customer) isPerson() {}

// BankEmployee is a staff member at a bank.
type BankEmployee struct {
	ID       string `json:"id"`
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
	Bank     Bank   `json:"bank"`
}

func (BankEmployee) isPerson() {}
