package tracing

import (
	"github.com/sarchlab/pnvpec/datarecording"
	"github.com/sarchlab/pnvpec/pec"
	"github.com/sarchlab/pnvpec/sim"
)

// GuestErrorRecord is a row of the guest error table.
type GuestErrorRecord struct {
	ID        string
	Component string
	ChipID    uint32
	PECIndex  uint32
	Window    string
	Kind      string
	Offset    uint64
	Value     string
}

// GuestErrorTracer records the guest errors of the PECs it is attached to.
type GuestErrorTracer struct {
	recorder datarecording.DataRecorder
	count    uint64
}

// NewGuestErrorTracer creates the guest error table and returns a tracer
// that fills it.
func NewGuestErrorTracer(
	recorder datarecording.DataRecorder,
) *GuestErrorTracer {
	recorder.CreateTable(GuestErrorTable, GuestErrorRecord{})

	return &GuestErrorTracer{recorder: recorder}
}

// Func records the guest error carried by the hook context.
func (t *GuestErrorTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != pec.HookPosGuestError {
		return
	}

	e := ctx.Item.(pec.GuestError)

	t.recorder.InsertData(GuestErrorTable, GuestErrorRecord{
		ID:        sim.GetIDGenerator().Generate(),
		Component: domainName(ctx),
		ChipID:    e.ChipID,
		PECIndex:  e.Index,
		Window:    e.Window.String(),
		Kind:      e.Kind.String(),
		Offset:    e.Offset,
		Value:     hex64(e.Value),
	})
	t.count++
}

// Count returns how many guest errors were recorded.
func (t *GuestErrorTracer) Count() uint64 {
	return t.count
}
