package models

import (
	"time"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/letters"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Org       string    `json:"org"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Org      string `json:"org"`
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
	Company  string `json:"company,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterBankRequest struct {
	Name string `json:"name"`
}

type ApplyRequest struct {
	LetterID       string                 `json:"letterId,omitempty"`
	BeneficiaryID  string                 `json:"beneficiaryId"`
	Rules          []letters.Rule         `json:"rules"`
	ProductDetails letters.ProductDetails `json:"productDetails"`
}

type ApplyResponse struct {
	LetterID string `json:"letterId"`
}

type RuleChangeRequest struct {
	Rules []letters.Rule `json:"rules"`
}

type ShipRequest struct {
	Evidence letters.Evidence `json:"evidence"`
}
