package letters

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Status tracks a letter of credit through its lifecycle. The ordinal values
// order the forward path; Rejected is a terminal side branch and must never be
// reasoned about by comparison, only by equality.
type Status int

const (
	AwaitingApproval Status = iota
	Approved
	Shipped
	Received
	ReadyForPayment
	Closed
	Rejected
)

var statusNames = map[Status]string{
	AwaitingApproval: "AWAITING_APPROVAL",
	Approved:         "APPROVED",
	Shipped:          "SHIPPED",
	Received:         "RECEIVED",
	ReadyForPayment:  "READY_FOR_PAYMENT",
	Closed:           "CLOSED",
	Rejected:         "REJECTED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus maps the wire form back to a Status.
func ParseStatus(value string) (Status, error) {
	for status, name := range statusNames {
		if name == value {
			return status, nil
		}
	}
	return 0, errors.Errorf("%q is not a valid letter status", value)
}

// MarshalJSON stores statuses as their names so ledger records stay
// self-describing.
func (s Status) MarshalJSON() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, errors.Errorf("%d is not a valid letter status", s)
	}
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	status, err := ParseStatus(name)
	if err != nil {
		return err
	}

	*s = status
	return nil
}
