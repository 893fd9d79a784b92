// Package monitoring serves an HTTP interface to inspect a running machine:
// its components, its device tree, and its XSCOM registers.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/pnvpec/monitoring/web"
	"github.com/sarchlab/pnvpec/sim"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// A Target is the machine a Monitor inspects.
type Target interface {
	ReadXSCOM(chipID uint32, pcba uint32) (uint64, error)
	WriteXSCOM(chipID uint32, pcba uint32, value uint64) error
	WriteDeviceTreeSource(w io.Writer) error
}

// Monitor can turn a machine into a server and allows external inspection.
type Monitor struct {
	// accessLock serializes accesses to the target, which is not safe for
	// concurrent use.
	accessLock sync.Mutex
	target     Target
	components []sim.Component
	portNumber int

	server   *http.Server
	listener net.Listener

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterTarget sets the machine to inspect.
func (m *Monitor) RegisterTarget(t Target) {
	m.target = t
}

// RegisterComponent register a component to be monitored.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler that serves the monitoring API and pages.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/xscom/{chip}/{pcba}", m.readXSCOM).
		Methods(http.MethodGet)
	r.HandleFunc("/api/xscom/{chip}/{pcba}", m.writeXSCOM).
		Methods(http.MethodPut, http.MethodPost).
		Queries("value", "{value}")
	r.HandleFunc("/api/devicetree", m.deviceTree)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns the port it
// listens on.
func (m *Monitor) StartServer() int {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	port := listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr,
		"Monitoring machine with http://localhost:%d\n", port)

	server := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	m.listener = listener
	m.server = server

	go func() {
		err := server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return port
}

// StopServer shuts the server down, waiting for pending requests.
func (m *Monitor) StopServer() {
	if m.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.server.Shutdown(ctx); err != nil {
		log.Printf("monitor: %v", err)
	}

	m.server = nil
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	m.accessLock.Lock()
	defer m.accessLock.Unlock()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	component := m.findComponentOr404(w, req.CompName)
	if component == nil {
		return
	}

	m.accessLock.Lock()
	defer m.accessLock.Unlock()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type xscomRsp struct {
	Chip  uint32 `json:"chip"`
	PCBA  string `json:"pcba"`
	Value string `json:"value"`
}

func parseXSCOMVars(r *http.Request) (uint32, uint32, error) {
	vars := mux.Vars(r)

	chip, err := strconv.ParseUint(vars["chip"], 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid chip %q", vars["chip"])
	}

	pcba, err := strconv.ParseUint(vars["pcba"], 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pcba %q", vars["pcba"])
	}

	return uint32(chip), uint32(pcba), nil
}

func (m *Monitor) readXSCOM(w http.ResponseWriter, r *http.Request) {
	if !m.targetOr503(w) {
		return
	}

	chip, pcba, err := parseXSCOMVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.accessLock.Lock()
	value, err := m.target.ReadXSCOM(chip, pcba)
	m.accessLock.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, xscomRsp{
		Chip:  chip,
		PCBA:  fmt.Sprintf("0x%x", pcba),
		Value: fmt.Sprintf("0x%016x", value),
	})
}

func (m *Monitor) writeXSCOM(w http.ResponseWriter, r *http.Request) {
	if !m.targetOr503(w) {
		return
	}

	chip, pcba, err := parseXSCOMVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	value, err := strconv.ParseUint(mux.Vars(r)["value"], 0, 64)
	if err != nil {
		http.Error(w, "invalid value", http.StatusBadRequest)
		return
	}

	m.accessLock.Lock()
	err = m.target.WriteXSCOM(chip, pcba, value)
	m.accessLock.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (m *Monitor) deviceTree(w http.ResponseWriter, _ *http.Request) {
	if !m.targetOr503(w) {
		return
	}

	buf := new(bytes.Buffer)

	m.accessLock.Lock()
	err := m.target.WriteDeviceTreeSource(buf)
	m.accessLock.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = w.Write(buf.Bytes())
	dieOnErr(err)
}

func (m *Monitor) targetOr503(w http.ResponseWriter) bool {
	if m.target == nil {
		http.Error(w, "no machine registered", http.StatusServiceUnavailable)
		return false
	}

	return true
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	for _, c := range m.components {
		if c.Name() == name {
			return c
		}
	}

	http.Error(w, "Component not found", http.StatusNotFound)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	process, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
