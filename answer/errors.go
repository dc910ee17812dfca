package answer

import "errors"

// ErrGeneratorRequired is returned when an answer generator is not provided.
var ErrGeneratorRequired = errors.New("answer generator required")
