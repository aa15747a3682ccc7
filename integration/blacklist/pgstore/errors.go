package pgstore

import "errors"

var ErrInvalidEntry = errors.New("pgstore: invalid blacklist entry")
