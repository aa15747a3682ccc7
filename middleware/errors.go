package middleware

import "errors"

var ErrInvalidBlacklistEntry = errors.New("middleware: invalid blacklist entry")
