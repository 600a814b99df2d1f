package module

import "sync"

// process registry for cross wiring ports while main composes modules
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores ports under name, replacing any earlier entry
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches the ports registered under name as T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset empties the registry; tests only
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
