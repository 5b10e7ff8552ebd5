package items

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"codeberg.org/ashpool/sysbar/internal/errors"
)

const defaultStatPath = "/proc/stat"

func statPath() string {
	if v := os.Getenv("PROC_STAT_PATH"); v != "" {
		return v
	}
	return defaultStatPath
}

// cpuCounters is one raw snapshot of the aggregate "cpu" line:
// cumulative idle and total jiffies since boot.
type cpuCounters struct {
	idle  uint64
	total uint64
}

// parseCPUCounters parses the aggregate line of /proc/stat:
// "cpu user nice system idle [iowait irq softirq steal ...]".
func parseCPUCounters(line string) (cpuCounters, error) {
	errFactory := errors.New()

	fields := strings.Fields(line)
	if len(fields) < 5 || fields[0] != "cpu" {
		return cpuCounters{}, errFactory.WithData(errors.ErrParseFailed, line)
	}

	var counters cpuCounters
	// user + nice + system + idle, then up to four optional fields
	// (iowait, irq, softirq, steal) all count toward total.
	limit := len(fields)
	if limit > 9 {
		limit = 9
	}
	for i := 1; i < limit; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return cpuCounters{}, errFactory.Wrap(errors.ErrParseFailed, err)
		}
		counters.total += v
		if i == 4 {
			counters.idle = v
		}
	}

	return counters, nil
}

func readCPUCounters(path string) (cpuCounters, error) {
	errFactory := errors.New()

	f, err := os.Open(path)
	if err != nil {
		return cpuCounters{}, errFactory.Wrap(errors.ErrPollFailed, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return cpuCounters{}, errFactory.WithMessage(errors.ErrParseFailed, "empty stat file")
	}

	return parseCPUCounters(scanner.Text())
}

// cpuUtilization computes the busy fraction between two snapshots.
func cpuUtilization(prev, cur cpuCounters) float64 {
	totalDelta := cur.total - prev.total
	idleDelta := cur.idle - prev.idle
	if cur.total < prev.total || totalDelta == 0 {
		return 0
	}
	return float64(totalDelta-idleDelta) / float64(totalDelta)
}

// cpuBackend keeps the previous snapshot between polls: utilization
// is a delta, so the very first poll yields "no data yet".
type cpuBackend struct {
	path    string
	prev    cpuCounters
	hasPrev bool
}

func newCPUBackend() *cpuBackend {
	return &cpuBackend{path: statPath()}
}

func (b *cpuBackend) Poll() Sample {
	now := time.Now()

	cur, err := readCPUCounters(b.path)
	if err != nil {
		return Sample{At: now, Err: err}
	}

	if !b.hasPrev {
		b.prev = cur
		b.hasPrev = true
		return Sample{At: now}
	}

	usage := cpuUtilization(b.prev, cur)
	b.prev = cur

	return Sample{At: now, Reading: CPUReading{Utilization: usage}}
}
