package keylock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sweetshop/internal/pkg/keylock"
)

func TestLock_SerializesSameKey(t *testing.T) {
	l := keylock.New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("sweet-1")
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, l.Len(), "entradas devem ser liberadas após o uso")
}

func TestLock_DifferentKeysDoNotBlock(t *testing.T) {
	l := keylock.New()
	unlockA := l.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("chave b não deveria esperar pela chave a")
	}
}

func TestUnlock_Idempotent(t *testing.T) {
	var l keylock.Locker // valor zero utilizável
	unlock := l.Lock("x")
	unlock()
	assert.NotPanics(t, unlock)
	assert.Equal(t, 0, l.Len())
}
