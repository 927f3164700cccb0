package ledger

// Persistence is the key-value slot the ledger is written to.
// Load returns nil, nil when the key has never been saved.
type Persistence interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// PersistenceFuncs adapts a pair of functions to Persistence.
type PersistenceFuncs struct {
	LoadFunc func(key string) ([]byte, error)
	SaveFunc func(key string, data []byte) error
}

// Load implements Persistence.
func (p PersistenceFuncs) Load(key string) ([]byte, error) {
	if p.LoadFunc == nil {
		return nil, nil
	}
	return p.LoadFunc(key)
}

// Save implements Persistence.
func (p PersistenceFuncs) Save(key string, data []byte) error {
	if p.SaveFunc == nil {
		return nil
	}
	return p.SaveFunc(key, data)
}

// MemorySlots is an in-process Persistence. It is not safe for concurrent
// use on its own; Store serializes access.
type MemorySlots map[string][]byte

// Load implements Persistence.
func (m MemorySlots) Load(key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements Persistence.
func (m MemorySlots) Save(key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m[key] = buf
	return nil
}
