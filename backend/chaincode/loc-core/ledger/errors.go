package ledger

import "github.com/pkg/errors"

// Sentinel errors returned by StateList. Callers match them with errors.Is;
// the messages travelling with a wrap carry the class and key involved.
var (
	// ErrAlreadyExists - Add found a record under the same key.
	ErrAlreadyExists = errors.New("state already exists for key")

	// ErrNotFound - Get or Update found nothing under the key.
	ErrNotFound = errors.New("no state exists for key")

	// ErrUnsupportedType - the stored class tag has no registered decoder.
	ErrUnsupportedType = errors.New("unsupported state class")

	// ErrMalformedRecord - the stored bytes are not valid JSON for the class
	// or a required field is missing.
	ErrMalformedRecord = errors.New("malformed state record")

	// ErrWriteConflict - the substrate refused the write. The transaction can
	// be retried by the invoking layer against freshly read state.
	ErrWriteConflict = errors.New("write rejected by world state")
)
