package pec

// Nest window registers, as PCB offsets from the nest window base.
const (
	NestPBCQHWConfig       = 0x00
	NestDropPrioCtrl       = 0x01
	NestPBCQErrInject      = 0x02
	NestPCINestClkTraceCtl = 0x03
	NestPBCQPMonCtrl       = 0x04
	NestPBCQPBusAddrExt    = 0x05
	NestPBCQPredVecTimeout = 0x06
	NestCAPPCtrl           = 0x07
	NestPBCQReadStkOvr     = 0x08
	NestPBCQWriteStkOvr    = 0x09
	NestPBCQStoreStkOvr    = 0x0a
	NestPBCQRetryBkoffCtrl = 0x0b
)

// PCI window registers, as PCB offsets from the pci window base.
const (
	PCIPBAIBHWConfig   = 0x00
	PCIPBAIBReadStkOvr = 0x01
)

var phb4NestWritable = []uint32{
	NestPBCQHWConfig,
	NestDropPrioCtrl,
	NestPBCQErrInject,
	NestPCINestClkTraceCtl,
	NestPBCQPMonCtrl,
	NestPBCQPBusAddrExt,
	NestPBCQPredVecTimeout,
	NestCAPPCtrl,
	NestPBCQReadStkOvr,
	NestPBCQWriteStkOvr,
	NestPBCQStoreStkOvr,
	NestPBCQRetryBkoffCtrl,
}

var phb4PCIWritable = []uint32{
	PCIPBAIBHWConfig,
	PCIPBAIBReadStkOvr,
}
