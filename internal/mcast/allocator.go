package mcast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	// BaseAddress is the default starting point for address assignment.
	BaseAddress = "239.0.0.0"
	// ChatPort is the single port shared by all project chat groups.
	ChatPort = 10000
)

// ErrExhausted reports that no multicast address is left to assign.
var ErrExhausted = errors.New("mcast: multicast address space exhausted")

// Allocator hands out one unique multicast address per project. Addresses
// freed by cancelled projects go into a FIFO reuse queue that is always
// drained before a fresh address is minted; minting increments the last
// octet of the cursor, carrying into higher octets on overflow. The whole
// allocation is a single critical section since it mutates the shared
// cursor.
type Allocator struct {
	mu   sync.Mutex
	cur  [4]int
	port int
	free []string
}

// NewAllocator returns an allocator starting at BaseAddress with ChatPort.
func NewAllocator() *Allocator {
	a, err := NewAllocatorAt(BaseAddress, ChatPort)
	if err != nil {
		// BaseAddress is a valid literal.
		panic(err)
	}
	return a
}

// NewAllocatorAt returns an allocator whose cursor starts at the given
// dotted-quad base address.
func NewAllocatorAt(base string, port int) (*Allocator, error) {
	parts := strings.Split(base, ".")
	if len(parts) != 4 {
		return nil, fmt.Errorf("mcast: invalid base address %q", base)
	}
	a := &Allocator{port: port}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("mcast: invalid base address %q", base)
		}
		a.cur[i] = n
	}
	return a, nil
}

// Next assigns an address/port pair. A queued freed address is preferred
// over minting a new one; the queue is strictly FIFO.
func (a *Allocator) Next() (string, int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.free) > 0 {
		addr := a.free[0]
		a.free = a.free[1:]
		return addr, a.port, nil
	}
	switch {
	case a.cur[3] < 255:
		a.cur[3]++
	case a.cur[2] < 255:
		a.cur[2]++
		a.cur[3] = 0
	case a.cur[1] < 255:
		a.cur[1]++
		a.cur[2], a.cur[3] = 0, 0
	default:
		return "", 0, ErrExhausted
	}
	return fmt.Sprintf("%d.%d.%d.%d", a.cur[0], a.cur[1], a.cur[2], a.cur[3]), a.port, nil
}

// Release returns a freed address to the reuse queue.
func (a *Allocator) Release(addr string) {
	a.mu.Lock()
	a.free = append(a.free, addr)
	a.mu.Unlock()
}
