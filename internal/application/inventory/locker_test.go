package inventory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocker_SerializaMismaClave(t *testing.T) {
	k := NewKeyedLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("sid|Stock|A1")
			defer unlock()
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, k.size())
}

func TestKeyedLocker_ClavesDistintasNoSeBloquean(t *testing.T) {
	k := NewKeyedLocker()
	unlockA := k.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := k.Lock("b")
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("la clave b quedó bloqueada por a")
	}
	unlockA()
}

func TestKeyedLocker_LotesEnOrdenInversoSinDeadlock(t *testing.T) {
	k := NewKeyedLocker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			k.Lock("x", "y", "x")()
		}()
		go func() {
			defer wg.Done()
			k.Lock("y", "x")()
		}()
	}
	finished := make(chan struct{})
	go func() { wg.Wait(); close(finished) }()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("deadlock entre lotes")
	}
	assert.Equal(t, 0, k.size())
}

func TestKeyedLocker_UnlockIdempotente(t *testing.T) {
	k := NewKeyedLocker()
	unlock := k.Lock("a")
	unlock()
	unlock()
	k.Lock("a")()
	assert.Equal(t, 0, k.size())
}

func TestRowKey(t *testing.T) {
	assert.Equal(t, "sid|Stock|A1", RowKey("sid", "Stock", "A1"))
}
