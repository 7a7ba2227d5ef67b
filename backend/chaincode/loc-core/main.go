package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/tradenet/locnet/backend/chaincode/loc-core/chaincode"
)

func main() {
	locContract := new(chaincode.LetterOfCreditContract)
	locContract.Name = "org.locnet.letterofcredit"
	locContract.TransactionContextHandler = new(chaincode.TransactionContext)

	participantsContract := new(chaincode.ParticipantsContract)
	participantsContract.Name = "org.locnet.participants"
	participantsContract.TransactionContextHandler = new(chaincode.TransactionContext)

	locChaincode, err := contractapi.NewChaincode(locContract, participantsContract)
	if err != nil {
		log.Panicf("Error creating letters of credit chaincode: %v", err)
	}

	if err := locChaincode.Start(); err != nil {
		log.Panicf("Error starting letters of credit chaincode: %v", err)
	}
}
