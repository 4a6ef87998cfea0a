package plugin

import (
	"errors"
	"hash/fnv"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
}

// UID derives a stable 16-byte class ID from the string ID
func (i Info) UID() [16]byte {
	h := fnv.New128a()
	h.Write([]byte(i.ID))

	var uid [16]byte
	copy(uid[:], h.Sum(nil))
	return uid
}

// ValidateUID checks that the plugin can be given a class ID
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin: empty plugin ID")
	}
	return nil
}
