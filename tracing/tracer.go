// Package tracing provides hooks that turn the diagnostics of the PECs and
// their XSCOM buses into records and log lines.
package tracing

import (
	"fmt"

	"github.com/sarchlab/pnvpec/sim"
)

// Table names used by the tracers.
const (
	GuestErrorTable = "guest_errors"
	AccessTable     = "xscom_access"
)

func domainName(ctx sim.HookCtx) string {
	if named, ok := ctx.Domain.(sim.Named); ok {
		return named.Name()
	}

	return fmt.Sprintf("%T", ctx.Domain)
}

func hex64(v uint64) string {
	return fmt.Sprintf("0x%016x", v)
}
