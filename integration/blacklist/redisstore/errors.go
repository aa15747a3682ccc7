package redisstore

import "errors"

var ErrInvalidIP = errors.New("redisstore: invalid ip address")
