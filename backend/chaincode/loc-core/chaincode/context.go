// Package chaincode exposes the letter of credit workflow and participant
// registration as Fabric contracts.
package chaincode

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/identity"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/letters"
	"github.com/tradenet/locnet/backend/chaincode/loc-core/participants"
)

// TransactionContext wires the directories and the identity resolver over the
// transaction's stub. Both contracts share this one context type; the lists
// are built lazily and reused within the transaction.
type TransactionContext struct {
	contractapi.TransactionContext

	participantList *participants.ParticipantList
	letterList      *letters.LetterList
	clientIdentity  *identity.ClientIdentity
}

// ParticipantList returns the participant directory for this transaction.
func (ctx *TransactionContext) ParticipantList() *participants.ParticipantList {
	if ctx.participantList == nil {
		ctx.participantList = participants.NewList(ctx.GetStub())
	}
	return ctx.participantList
}

// LetterList returns the letter directory for this transaction.
func (ctx *TransactionContext) LetterList() *letters.LetterList {
	if ctx.letterList == nil {
		ctx.letterList = letters.NewList(ctx.GetStub(), ctx.ParticipantList())
	}
	return ctx.letterList
}

// CallerIdentity returns the resolver for the transaction's client identity.
func (ctx *TransactionContext) CallerIdentity() *identity.ClientIdentity {
	if ctx.clientIdentity == nil {
		ctx.clientIdentity = identity.New(ctx.GetClientIdentity(), ctx.ParticipantList())
	}
	return ctx.clientIdentity
}
