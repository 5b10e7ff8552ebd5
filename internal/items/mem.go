package items

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"codeberg.org/ashpool/sysbar/internal/errors"
)

const defaultMeminfoPath = "/proc/meminfo"

func meminfoPath() string {
	if v := os.Getenv("PROC_MEMINFO_PATH"); v != "" {
		return v
	}
	return defaultMeminfoPath
}

// memBackend is stateless: a single read of the meminfo pseudo-file
// is sufficient per poll.
type memBackend struct {
	path string
}

func newMemBackend() *memBackend {
	return &memBackend{path: meminfoPath()}
}

func (b *memBackend) Poll() Sample {
	now := time.Now()
	reading, err := readMemInfo(b.path)
	if err != nil {
		return Sample{At: now, Err: err}
	}
	return Sample{At: now, Reading: reading}
}

// readMemInfo parses "Key:  value kB" lines. Used memory is total
// minus MemAvailable, falling back to MemFree+Buffers+Cached on
// kernels without MemAvailable.
func readMemInfo(path string) (MemReading, error) {
	errFactory := errors.New()

	f, err := os.Open(path)
	if err != nil {
		return MemReading{}, errFactory.Wrap(errors.ErrPollFailed, err)
	}
	defer f.Close()

	values := make(map[string]uint64, 5)
	wanted := map[string]bool{
		"MemTotal":     true,
		"MemAvailable": true,
		"MemFree":      true,
		"Buffers":      true,
		"Cached":       true,
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, rest, found := strings.Cut(scanner.Text(), ":")
		if !found || !wanted[key] {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return MemReading{}, errFactory.WithData(errors.ErrParseFailed, key)
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return MemReading{}, errFactory.Wrap(errors.ErrParseFailed, err)
		}
		values[key] = v
	}
	if err := scanner.Err(); err != nil {
		return MemReading{}, errFactory.Wrap(errors.ErrPollFailed, err)
	}

	total, ok := values["MemTotal"]
	if !ok {
		return MemReading{}, errFactory.WithMessage(errors.ErrParseFailed, "MemTotal not found")
	}

	available, ok := values["MemAvailable"]
	if !ok {
		free, haveFree := values["MemFree"]
		buffers, haveBuffers := values["Buffers"]
		cached, haveCached := values["Cached"]
		if !haveFree || !haveBuffers || !haveCached {
			return MemReading{}, errFactory.WithMessage(errors.ErrParseFailed, "no usable availability fields")
		}
		available = free + buffers + cached
	}

	used := uint64(0)
	if total > available {
		used = total - available
	}

	return MemReading{UsedKB: used, TotalKB: total}, nil
}
