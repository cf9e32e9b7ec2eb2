package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OutgoingLookup(t *testing.T) {
	r := New()
	_, ok := r.Outgoing("open")
	assert.False(t, ok)

	called := false
	r.RegisterOutgoing("open", func() error { called = true; return nil })

	action, ok := r.Outgoing("open")
	require.True(t, ok)
	require.NoError(t, action())
	assert.True(t, called)
}

func TestRegistry_IncomingKeyedByPair(t *testing.T) {
	r := New()
	r.RegisterIncoming("open", "menu", func() error { return nil })

	_, ok := r.Incoming("open", "menu")
	assert.True(t, ok)
	_, ok = r.Incoming("open", "toolbar")
	assert.False(t, ok, "same transition, different state")
	_, ok = r.Incoming("close", "menu")
	assert.False(t, ok, "same state, different transition")
}

func TestRegistry_ReregisterOverwrites(t *testing.T) {
	r := New()
	r.RegisterOutgoing("open", func() error { return assert.AnError })
	r.RegisterOutgoing("open", func() error { return nil })

	action, _ := r.Outgoing("open")
	assert.NoError(t, action())
}

func TestRegistry_Clear(t *testing.T) {
	r := New()
	r.RegisterOutgoing("open", func() error { return nil })
	r.RegisterIncoming("open", "menu", func() error { return nil })
	r.Clear()

	_, ok := r.Outgoing("open")
	assert.False(t, ok)
	_, ok = r.Incoming("open", "menu")
	assert.False(t, ok)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.RegisterOutgoing("open", func() error { return nil })
		}()
		go func() {
			defer wg.Done()
			r.Outgoing("open")
		}()
	}
	wg.Wait()
}
