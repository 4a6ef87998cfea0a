// Package state persists plugin parameters as an XML tree wrapped in a small
// binary frame for host state blobs.
package state

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/justyntemme/protoplug/pkg/framework/param"
)

const (
	magic = "PPLG"

	// Version is the current state format version
	Version uint32 = 1

	// maxStateSize bounds the XML payload read from a host blob
	maxStateSize = 1 << 20
)

var (
	// ErrForeignState is returned when the root tag does not match
	ErrForeignState = errors.New("state: foreign state tree")
	// ErrMalformedState is returned when the blob or a value cannot be decoded
	ErrMalformedState = errors.New("state: malformed state")
	// ErrVersion is returned for blobs written by a newer format
	ErrVersion = errors.New("state: unsupported version")
)

// Manager handles plugin state saving and loading
type Manager struct {
	root     string
	version  uint32
	registry *param.Registry
}

// NewManager creates a new state manager whose trees use root as tag name
func NewManager(registry *param.Registry, root string) *Manager {
	return &Manager{
		root:     root,
		version:  Version,
		registry: registry,
	}
}

// Root returns the expected root tag
func (m *Manager) Root() string {
	return m.root
}

// Snapshot captures every parameter's plain value
func (m *Manager) Snapshot() *Tree {
	t := &Tree{XMLName: xml.Name{Local: m.root}}
	for _, p := range m.registry.All() {
		t.Params = append(t.Params, Entry{
			ID:    p.Key,
			Value: strconv.FormatFloat(p.GetPlainValue(), 'g', -1, 64),
		})
	}
	return t
}

// Restore applies a tree. Every known entry is validated before any value is
// written, so on error the registry is left untouched.
func (m *Manager) Restore(t *Tree) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrMalformedState)
	}
	if t.XMLName.Local != m.root {
		return fmt.Errorf("%w: root %q, want %q", ErrForeignState, t.XMLName.Local, m.root)
	}

	type pending struct {
		p     *param.Parameter
		plain float64
	}
	updates := make([]pending, 0, len(t.Params))

	for _, e := range t.Params {
		p := m.registry.Get(e.ID)
		if p == nil {
			// Ignore unknown parameters for forward compatibility
			continue
		}
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%q", ErrMalformedState, e.ID, e.Value)
		}
		updates = append(updates, pending{p: p, plain: v})
	}

	for _, u := range updates {
		u.p.SetPlainValue(u.plain)
	}
	return nil
}

// Save writes the framed state to w
func (m *Manager) Save(w io.Writer) error {
	payload, err := m.Snapshot().EncodeXML()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(payload))); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// Load reads framed state from r and restores it
func (m *Manager) Load(r io.Reader) error {
	t, err := m.Decode(r)
	if err != nil {
		return err
	}
	return m.Restore(t)
}

// Decode reads a framed tree without applying it
func (m *Manager) Decode(r io.Reader) (*Tree, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedState, err)
	}
	if !bytes.Equal(header, []byte(magic)) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedState, header)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrMalformedState, err)
	}
	if version > m.version {
		return nil, fmt.Errorf("%w: %d is newer than %d", ErrVersion, version, m.version)
	}

	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("%w: size: %v", ErrMalformedState, err)
	}
	if size > maxStateSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrMalformedState, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedState, err)
	}

	t, err := DecodeXML(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return t, nil
}
