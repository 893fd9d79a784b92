// Command pecsim builds a PowerNV machine model and inspects its PCI Express
// controllers.
package main

import (
	"github.com/sarchlab/pnvpec/pecsim/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
