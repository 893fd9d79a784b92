package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pnvpec/chip"
	"github.com/sarchlab/pnvpec/datarecording"
	"github.com/sarchlab/pnvpec/machine"
	"github.com/sarchlab/pnvpec/monitoring"
	"github.com/sarchlab/pnvpec/pec"
	"github.com/spf13/cobra"
)

// Environment variables that provide flag defaults.
const (
	envGeneration  = "PECSIM_GENERATION"
	envChips       = "PECSIM_CHIPS"
	envNoDefaults  = "PECSIM_NO_DEFAULTS"
	envRecord      = "PECSIM_RECORD"
	envMonitorPort = "PECSIM_MONITOR_PORT"
)

// loadEnv reads variables from an env file without overriding the ones
// already set. A missing file is not an error.
func loadEnv(filename string) {
	err := godotenv.Load(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		warn("cannot load %s: %v", filename, err)
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		warn("ignoring %s=%q: %v", key, v, err)
		return def
	}

	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		warn("ignoring %s=%q: %v", key, v, err)
		return def
	}

	return b
}

func addMachineFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String("generation", envString(envGeneration, "power9"),
		"Processor generation, power9 or power10.")
	flags.Int("chips", envInt(envChips, 1), "Number of chips.")
	flags.Bool("no-defaults", envBool(envNoDefaults, false),
		"Do not build the default PHB of each stack.")
	flags.String("record", envString(envRecord, ""),
		"Record guest errors into the SQLite file <record>.sqlite3.")
	flags.Bool("trace-accesses", false,
		"Also record every XSCOM access. Requires --record.")
}

type machineConfig struct {
	profile       chip.Profile
	numChips      int
	noDefaults    bool
	record        string
	traceAccesses bool
}

func readMachineConfig(cmd *cobra.Command) (machineConfig, error) {
	flags := cmd.Flags()

	generation, _ := flags.GetString("generation")
	numChips, _ := flags.GetInt("chips")
	noDefaults, _ := flags.GetBool("no-defaults")
	record, _ := flags.GetString("record")
	traceAccesses, _ := flags.GetBool("trace-accesses")

	profile, ok := chip.ProfileByName(strings.ToLower(generation))
	if !ok {
		return machineConfig{}, fmt.Errorf("unknown generation %q", generation)
	}

	if numChips <= 0 {
		return machineConfig{}, fmt.Errorf("invalid number of chips: %d",
			numChips)
	}

	if traceAccesses && record == "" {
		return machineConfig{}, errors.New("--trace-accesses needs --record")
	}

	return machineConfig{
		profile:       profile,
		numChips:      numChips,
		noDefaults:    noDefaults,
		record:        record,
		traceAccesses: traceAccesses,
	}, nil
}

// buildMachine builds and realizes the machine the flags describe. Bridge
// failures are reported as warnings.
func buildMachine(
	cmd *cobra.Command,
	monitor *monitoring.Monitor,
) (*machine.Machine, error) {
	cfg, err := readMachineConfig(cmd)
	if err != nil {
		return nil, err
	}

	b := machine.MakeBuilder().
		WithProfile(cfg.profile).
		WithNumChips(cfg.numChips).
		WithLogger(log.New(cmd.ErrOrStderr(), "", 0))

	if cfg.noDefaults {
		b = b.WithoutDefaultDevices()
	}

	if cfg.record != "" {
		b = b.WithDataRecorder(datarecording.New(cfg.record))
	}

	if cfg.traceAccesses {
		b = b.WithAccessTracing()
	}

	if monitor != nil {
		b = b.WithMonitor(monitor)
	}

	m := b.Build()

	err = m.Realize()
	if pec.IsFatal(err) {
		_ = m.Terminate()
		return nil, err
	}

	if err != nil {
		warn("%v", err)
	}

	return m, nil
}

// parseAssignment parses "ADDR=VALUE" where both sides accept Go integer
// literal prefixes.
func parseAssignment(s string) (uint32, uint64, error) {
	addr, value, found := strings.Cut(s, "=")
	if !found {
		return 0, 0, fmt.Errorf("%q is not ADDR=VALUE", s)
	}

	pcba, err := parsePCBA(addr)
	if err != nil {
		return 0, 0, err
	}

	v, err := strconv.ParseUint(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q", value)
	}

	return pcba, v, nil
}

func parsePCBA(s string) (uint32, error) {
	pcba, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}

	return uint32(pcba), nil
}
