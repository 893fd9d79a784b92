package tracing

import (
	"github.com/sarchlab/pnvpec/datarecording"
	"github.com/sarchlab/pnvpec/sim"
	"github.com/sarchlab/pnvpec/xscom"
)

// AccessRecord is a row of the access table.
type AccessRecord struct {
	ID     string
	Bus    string
	Region string
	PCBA   uint32
	Write  bool
	Value  string
}

// AccessTracer records the register accesses of the buses it is attached to.
type AccessTracer struct {
	recorder datarecording.DataRecorder
	count    uint64
}

// NewAccessTracer creates the access table and returns a tracer that fills
// it.
func NewAccessTracer(recorder datarecording.DataRecorder) *AccessTracer {
	recorder.CreateTable(AccessTable, AccessRecord{})

	return &AccessTracer{recorder: recorder}
}

// Func records the access carried by the hook context.
func (t *AccessTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != xscom.HookPosAccess {
		return
	}

	a := ctx.Item.(xscom.Access)

	t.recorder.InsertData(AccessTable, AccessRecord{
		ID:     sim.GetIDGenerator().Generate(),
		Bus:    domainName(ctx),
		Region: a.Region,
		PCBA:   a.PCBA,
		Write:  a.Write,
		Value:  hex64(a.Value),
	})
	t.count++
}

// Count returns how many accesses were recorded.
func (t *AccessTracer) Count() uint64 {
	return t.count
}
