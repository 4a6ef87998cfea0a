package state

import (
	"encoding/xml"
	"strconv"
)

// Tree is the serializable form of a parameter set
type Tree struct {
	XMLName xml.Name
	Params  []Entry `xml:"PARAM"`
}

// Entry holds one parameter value in plain units
type Entry struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

// Lookup returns the raw value stored for key
func (t *Tree) Lookup(key string) (string, bool) {
	for _, e := range t.Params {
		if e.ID == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set stores or replaces the value for key
func (t *Tree) Set(key string, value float64) {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	for i := range t.Params {
		if t.Params[i].ID == key {
			t.Params[i].Value = s
			return
		}
	}
	t.Params = append(t.Params, Entry{ID: key, Value: s})
}

// EncodeXML renders the tree as indented XML
func (t *Tree) EncodeXML() ([]byte, error) {
	return xml.MarshalIndent(t, "", "  ")
}

// DecodeXML parses a tree. Unknown elements are skipped by encoding/xml.
func DecodeXML(data []byte) (*Tree, error) {
	var t Tree
	if err := xml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
