// Package ledgertest provides an in-memory world state stub for unit tests.
package ledgertest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
)

const (
	compositeKeyNamespace = "\x00"
	keyDelimiter          = "\x00"
)

// Stub is a map-backed stand-in for the chaincode stub. It implements the
// narrow ledger.Stub surface and, through the embedded interface, passes for a
// full shim.ChaincodeStubInterface; calling anything unimplemented panics.
type Stub struct {
	shim.ChaincodeStubInterface

	State map[string][]byte

	// FailPut, when set, makes every PutState return this error. Used to
	// exercise write-conflict handling.
	FailPut error
}

// NewStub returns an empty in-memory stub.
func NewStub() *Stub {
	return &Stub{State: make(map[string][]byte)}
}

func (s *Stub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	key := compositeKeyNamespace + objectType + keyDelimiter
	for _, attr := range attributes {
		key += attr + keyDelimiter
	}
	return key, nil
}

func (s *Stub) SplitCompositeKey(compositeKey string) (string, []string, error) {
	if !strings.HasPrefix(compositeKey, compositeKeyNamespace) {
		return "", nil, fmt.Errorf("not a composite key: %q", compositeKey)
	}
	parts := strings.Split(strings.TrimPrefix(compositeKey, compositeKeyNamespace), keyDelimiter)
	// the trailing delimiter leaves one empty element
	parts = parts[:len(parts)-1]
	return parts[0], parts[1:], nil
}

func (s *Stub) GetState(key string) ([]byte, error) {
	return s.State[key], nil
}

func (s *Stub) PutState(key string, value []byte) error {
	if s.FailPut != nil {
		return s.FailPut
	}
	s.State[key] = value
	return nil
}

func (s *Stub) GetStateByPartialCompositeKey(objectType string, keys []string) (shim.StateQueryIteratorInterface, error) {
	prefix := compositeKeyNamespace + objectType + keyDelimiter
	for _, part := range keys {
		prefix += part + keyDelimiter
	}

	var matched []string
	for key := range s.State {
		if strings.HasPrefix(key, prefix) {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)

	var kvs []*queryresult.KV
	for _, key := range matched {
		kvs = append(kvs, &queryresult.KV{Key: key, Value: s.State[key]})
	}

	return &Iterator{kvs: kvs}, nil
}

// Iterator replays a fixed result set in key order.
type Iterator struct {
	kvs []*queryresult.KV
	pos int
}

func (it *Iterator) HasNext() bool {
	return it.pos < len(it.kvs)
}

func (it *Iterator) Next() (*queryresult.KV, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("no more results")
	}
	kv := it.kvs[it.pos]
	it.pos++
	return kv, nil
}

func (it *Iterator) Close() error {
	return nil
}
