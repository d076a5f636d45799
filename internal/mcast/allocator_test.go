package mcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocatorSequence verifies last-octet incrementing and that every
// assignment carries the shared chat port.
func TestAllocatorSequence(t *testing.T) {
	a := NewAllocator()

	addr, port, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.0.0.1", addr)
	assert.Equal(t, ChatPort, port)

	addr, _, err = a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.0.0.2", addr)
}

// TestAllocatorCarry verifies the octet carry when the cursor's last octet
// overflows.
func TestAllocatorCarry(t *testing.T) {
	a, err := NewAllocatorAt("239.0.0.254", ChatPort)
	require.NoError(t, err)

	addr, _, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.0.0.255", addr)

	addr, _, err = a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.0.1.0", addr)

	a, err = NewAllocatorAt("239.0.255.255", ChatPort)
	require.NoError(t, err)
	addr, _, err = a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.1.0.0", addr)
}

// TestAllocatorReuse verifies that freed addresses are handed out again in
// release order, before any new address is minted.
func TestAllocatorReuse(t *testing.T) {
	a := NewAllocator()

	first, _, err := a.Next()
	require.NoError(t, err)
	second, _, err := a.Next()
	require.NoError(t, err)

	a.Release(first)
	a.Release(second)

	addr, _, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, first, addr)
	addr, _, err = a.Next()
	require.NoError(t, err)
	assert.Equal(t, second, addr)

	// The queue is empty again, so minting resumes where it left off.
	addr, _, err = a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.0.0.3", addr)
}

// TestAllocatorExhausted verifies that a full cursor fails cleanly and that
// a released address still satisfies requests afterwards.
func TestAllocatorExhausted(t *testing.T) {
	a, err := NewAllocatorAt("239.255.255.255", ChatPort)
	require.NoError(t, err)

	_, _, err = a.Next()
	assert.ErrorIs(t, err, ErrExhausted)

	a.Release("239.0.0.7")
	addr, _, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, "239.0.0.7", addr)
}

// TestNewAllocatorAtRejectsBadBase covers malformed dotted quads.
func TestNewAllocatorAtRejectsBadBase(t *testing.T) {
	for _, base := range []string{"", "239.0.0", "239.0.0.0.0", "239.0.0.x", "239.0.0.256"} {
		_, err := NewAllocatorAt(base, ChatPort)
		assert.Error(t, err, "base %q", base)
	}
}
