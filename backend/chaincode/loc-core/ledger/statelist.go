package ledger

import (
	"encoding/json"
	"strings"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/pkg/errors"
)

// Stub is the slice of shim.ChaincodeStubInterface a StateList actually uses.
type Stub interface {
	CreateCompositeKey(objectType string, attributes []string) (string, error)
	SplitCompositeKey(compositeKey string) (string, []string, error)
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	GetStateByPartialCompositeKey(objectType string, keys []string) (shim.StateQueryIteratorInterface, error)
}

// DecodeFunc reconstructs a record of one class from its stored bytes. It must
// fail with ErrMalformedRecord when a required field is absent.
type DecodeFunc func(data []byte) (Record, error)

// StateList is a named partition of the world state holding records of the
// classes registered with Use. Every mutating call is one read then one write
// against the stub; serializing concurrent writers is the substrate's job.
type StateList struct {
	stub     Stub
	name     string
	decoders map[string]DecodeFunc
}

// NewStateList creates a list over the given stub. The name scopes every key
// the list touches; two lists with different names never collide.
func NewStateList(stub Stub, name string) *StateList {
	return &StateList{
		stub:     stub,
		name:     name,
		decoders: make(map[string]DecodeFunc),
	}
}

// Use registers the decoder for a class tag. Reading a record whose tag was
// never registered fails with ErrUnsupportedType.
func (l *StateList) Use(class string, decode DecodeFunc) {
	l.decoders[class] = decode
}

// Add writes a new record, failing with ErrAlreadyExists when one is already
// stored under the same key.
func (l *StateList) Add(record Record) error {
	key, err := l.ledgerKey(record.GetSplitKey())
	if err != nil {
		return err
	}

	existing, err := l.stub.GetState(key)
	if err != nil {
		return errors.Wrapf(err, "failed to read world state for key %s", record.GetKey())
	}

	if len(existing) > 0 {
		return errors.Wrapf(ErrAlreadyExists, "%s %s", record.GetClass(), record.GetKey())
	}

	return l.put(key, record)
}

// Get reads and decodes the record stored under the logical key.
func (l *StateList) Get(key string) (Record, error) {
	ledgerKey, err := l.ledgerKey(SplitKey(key))
	if err != nil {
		return nil, err
	}

	data, err := l.stub.GetState(ledgerKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read world state for key %s", key)
	}

	if len(data) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "key %s in list %s", key, l.name)
	}

	return l.decode(data)
}

// Update overwrites the record stored under the same key, failing with
// ErrNotFound when nothing was ever added there.
func (l *StateList) Update(record Record) error {
	key, err := l.ledgerKey(record.GetSplitKey())
	if err != nil {
		return err
	}

	existing, err := l.stub.GetState(key)
	if err != nil {
		return errors.Wrapf(err, "failed to read world state for key %s", record.GetKey())
	}

	if len(existing) == 0 {
		return errors.Wrapf(ErrNotFound, "key %s in list %s", record.GetKey(), l.name)
	}

	return l.put(key, record)
}

// All scans every record in the list. The iterator is lazy and one-shot;
// callers must Close it. Ordering is the substrate's lexicographic key order.
func (l *StateList) All() (*Iterator, error) {
	results, err := l.stub.GetStateByPartialCompositeKey(l.name, []string{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan list %s", l.name)
	}

	return &Iterator{results: results, list: l}, nil
}

func (l *StateList) put(key string, record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize %s %s", record.GetClass(), record.GetKey())
	}

	if err := l.stub.PutState(key, data); err != nil {
		return errors.Wrapf(ErrWriteConflict, "key %s: %s", record.GetKey(), err)
	}

	return nil
}

func (l *StateList) ledgerKey(keyParts []string) (string, error) {
	for _, part := range keyParts {
		if strings.Contains(part, KeySeparator) {
			return "", errors.Errorf("key part %q contains reserved separator %q", part, KeySeparator)
		}
	}

	key, err := l.stub.CreateCompositeKey(l.name, keyParts)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build composite key for list %s", l.name)
	}

	return key, nil
}

func (l *StateList) decode(data []byte) (Record, error) {
	var tagged struct {
		Class string `json:"class"`
	}

	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "not valid JSON: %s", err)
	}

	decode, ok := l.decoders[tagged.Class]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedType, "class %q in list %s", tagged.Class, l.name)
	}

	return decode(data)
}

// Iterator walks the results of All, decoding each record through the list's
// registry as it goes.
type Iterator struct {
	results shim.StateQueryIteratorInterface
	list    *StateList
}

// HasNext reports whether another record remains.
func (it *Iterator) HasNext() bool {
	return it.results.HasNext()
}

// Next returns the next logical key and decoded record.
func (it *Iterator) Next() (string, Record, error) {
	kv, err := it.results.Next()
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to advance state iterator")
	}

	_, keyParts, err := it.list.stub.SplitCompositeKey(kv.GetKey())
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to split composite key %q", kv.GetKey())
	}

	record, err := it.list.decode(kv.GetValue())
	if err != nil {
		return "", nil, err
	}

	return MakeKey(keyParts), record, nil
}

// Close releases the underlying query iterator.
func (it *Iterator) Close() error {
	return it.results.Close()
}
