package ledger

import "strings"

// KeySeparator joins the parts of a logical state key. Key parts must not
// contain it; the composite key handed to the stub uses Fabric's own framing,
// the separated form is only the lookup handle callers pass around.
const KeySeparator = ":"

// Record is anything that can live in a StateList. Concrete record types embed
// State to satisfy it.
type Record interface {
	GetClass() string
	GetKey() string
	GetSplitKey() []string
}

// State is the base of every ledger record. The class tag is set once at
// construction and selects the decoder when the record is read back.
type State struct {
	Class string `json:"class"`
	Key   string `json:"key"`
}

// NewState builds the base for a record of the given class stored under the
// given key parts.
func NewState(class string, keyParts ...string) State {
	return State{
		Class: class,
		Key:   MakeKey(keyParts),
	}
}

func (s State) GetClass() string {
	return s.Class
}

func (s State) GetKey() string {
	return s.Key
}

func (s State) GetSplitKey() []string {
	return SplitKey(s.Key)
}

// MakeKey joins ordered key parts into a single logical key.
func MakeKey(keyParts []string) string {
	return strings.Join(keyParts, KeySeparator)
}

// SplitKey recovers the ordered key parts of a logical key.
func SplitKey(key string) []string {
	return strings.Split(key, KeySeparator)
}
