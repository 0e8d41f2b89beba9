package server

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid server configuration")
	ErrInvalidMessage   = errors.New("invalid message")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnknownCodec     = errors.New("unknown codec")
	ErrServerNotRunning = errors.New("simulation is not running")
	ErrSimulationPanic  = errors.New("simulation panicked")
	ErrSlowConsumer     = errors.New("client is not keeping up")
)
