//go:build !dynobj_singlethreaded

package dynobj

import deadlock "github.com/sasha-s/go-deadlock"

// Multi-threaded build: real guards. objectGuard is reader/writer (shared
// for Get, exclusive for Set); factoryGuard is a single exclusive lock
// covering both the interner and the shape-transition cache. Both use
// go-deadlock's drop-in Mutex/RWMutex, which detects the one class of bug
// the lock-ordering discipline here exists to prevent: object guard is
// always acquired before the factory guard, and the factory guard is always
// released before any further object guard is taken.
type objectGuard struct {
	mu deadlock.RWMutex
}

func (g *objectGuard) rlock()   { g.mu.RLock() }
func (g *objectGuard) runlock() { g.mu.RUnlock() }
func (g *objectGuard) lock()    { g.mu.Lock() }
func (g *objectGuard) unlock()  { g.mu.Unlock() }

type factoryGuard struct {
	mu deadlock.Mutex
}

func (g *factoryGuard) lock()   { g.mu.Lock() }
func (g *factoryGuard) unlock() { g.mu.Unlock() }
