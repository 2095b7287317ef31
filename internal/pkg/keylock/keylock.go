// Package keylock fornece exclusão mútua por chave (ex.: ID do doce).
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker serializa operações que compartilham a mesma chave.
// Chaves diferentes não se bloqueiam. O valor zero está pronto para uso.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New cria um Locker vazio.
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock bloqueia a chave e devolve a função que a libera.
// A entrada é removida do mapa quando ninguém mais a referencia.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*entry)
	}
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// Len informa quantas chaves estão em uso no momento.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
