package pg

import "errors"

var (
	ErrEmptyConnString          = errors.New("empty postgres connection string")
	ErrFailedToParseConnString  = errors.New("failed to parse postgres connection string")
	ErrFailedToOpenDBConnection = errors.New("failed to open postgres connection")
	ErrHealthcheckFailed        = errors.New("postgres healthcheck failed")
)
