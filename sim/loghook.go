package sim

import (
	"log"
)

// A LogHook is a hook that writes what it observes into a logger.
type LogHook interface {
	Hook
}

// LogHookBase holds the logger of a LogHook.
type LogHookBase struct {
	*log.Logger
}
