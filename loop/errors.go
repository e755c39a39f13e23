package loop

import "errors"

var (
	// ErrProducerInvalid reports a contract violation by an effect's author:
	// the effect carries no producer, or its producer returned a nil future.
	ErrProducerInvalid = errors.New("loop: effect producer did not yield a future")

	// ErrEffectFailed reports that an effect's asynchronous production
	// rejected. The original failure is wrapped as the cause and can be
	// recovered with errors.Is or errors.As.
	ErrEffectFailed = errors.New("loop: effect execution failed")
)
