package creature

import apperrors "github.com/thornvale/menagerie/internal/errors"

var (
	// ErrNameTooShort indicates a name below the minimum length.
	ErrNameTooShort = apperrors.New(apperrors.CodeNameTooShort, "creature name is too short")
	// ErrNameTooLong indicates a name exceeding the bounded capacity.
	ErrNameTooLong = apperrors.New(apperrors.CodeNameTooLong, "creature name is too long")
)

// ValidateName checks a name's byte length against the configured bounds.
// The capacity check runs first, matching the bounded-container semantics
// of placement before the minimum-length check.
func ValidateName(name []byte, minLength, maxLength int) error {
	if len(name) > maxLength {
		return ErrNameTooLong
	}
	if len(name) < minLength {
		return ErrNameTooShort
	}
	return nil
}
