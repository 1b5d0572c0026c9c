package object

import "errors"

var (
	// ErrUnknownAttribute is returned when an attribute is not part of the schema.
	ErrUnknownAttribute = errors.New("object: unknown attribute")

	// ErrInvalidDiscriminator is returned when a polymorphic relation names an
	// unknown object type. Callers must treat it as fatal.
	ErrInvalidDiscriminator = errors.New("object: invalid polymorphic discriminator")

	// ErrMalformedPrimaryKey is returned when the primary key can't be parsed.
	// The update that carried it was not applied.
	ErrMalformedPrimaryKey = errors.New("object: malformed primary key")

	// ErrCreateUnsupported is returned for source updates of read-only types.
	ErrCreateUnsupported = errors.New("object: object type can only be read from remote")

	// ErrInvalidArgument is returned when a caller passes an unusable value.
	ErrInvalidArgument = errors.New("object: invalid argument")
)
