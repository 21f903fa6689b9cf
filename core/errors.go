package core

import "errors"

var (
	ErrProtocolViolation = errors.New("protocol violation")
	ErrInvalidLink       = errors.New("invalid link")
	ErrNoPath            = errors.New("no path")
)
