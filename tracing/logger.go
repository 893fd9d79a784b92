package tracing

import (
	"log"

	"github.com/sarchlab/pnvpec/sim"
	"github.com/sarchlab/pnvpec/xscom"
)

// AccessLogger is a hook that writes XSCOM accesses into a logger.
type AccessLogger struct {
	sim.LogHookBase
}

// NewAccessLogger returns an AccessLogger that writes into the logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	h := new(AccessLogger)
	h.Logger = logger

	return h
}

// Func writes one line per access.
func (h *AccessLogger) Func(ctx sim.HookCtx) {
	a, ok := ctx.Item.(xscom.Access)
	if !ok {
		return
	}

	dir := "read"
	if a.Write {
		dir = "write"
	}

	h.Printf("%s,%s,%s,0x%08x,%s\n",
		domainName(ctx), a.Region, dir, a.PCBA, hex64(a.Value))
}
