package model

import (
	"bytes"
	"encoding/json"
)

// MetaKey is the reserved top-level key carrying host variables.
const MetaKey = "_meta"

// Inventory is an Ansible dynamic inventory: ordered groups plus hostvars.
// Groups and hosts keep the order in which they were first added.
type Inventory struct {
	groups    []*Location
	byName    map[string]*Location
	hostOrder []string
	hostvars  map[string]HostVars
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		byName:   make(map[string]*Location),
		hostvars: make(map[string]HostVars),
	}
}

// AddGroup returns the group called name, creating it if needed.
func (inv *Inventory) AddGroup(name string) *Location {
	if g, ok := inv.byName[name]; ok {
		return g
	}
	g := NewLocation(name)
	inv.groups = append(inv.groups, g)
	inv.byName[name] = g
	return g
}

// Group looks up a group by name.
func (inv *Inventory) Group(name string) (*Location, bool) {
	g, ok := inv.byName[name]
	return g, ok
}

// Groups returns the groups in insertion order.
func (inv *Inventory) Groups() []*Location {
	return inv.groups
}

// SetHostVars records vars for hostname. A later call for the same host
// replaces the earlier vars but keeps the host's original position.
func (inv *Inventory) SetHostVars(hostname string, vars HostVars) {
	if _, ok := inv.hostvars[hostname]; !ok {
		inv.hostOrder = append(inv.hostOrder, hostname)
	}
	inv.hostvars[hostname] = vars
}

// HostVars returns the variables recorded for hostname.
func (inv *Inventory) HostVars(hostname string) (HostVars, bool) {
	v, ok := inv.hostvars[hostname]
	return v, ok
}

// Hosts returns every host with variables, in insertion order.
func (inv *Inventory) Hosts() []string {
	return inv.hostOrder
}

// Orphans returns hosts that belong to no group.
func (inv *Inventory) Orphans() []string {
	grouped := make(map[string]bool)
	for _, g := range inv.groups {
		for _, h := range g.Hosts {
			grouped[h] = true
		}
	}
	var out []string
	for _, h := range inv.hostOrder {
		if !grouped[h] {
			out = append(out, h)
		}
	}
	return out
}

// MarshalJSON writes groups in insertion order followed by _meta.hostvars.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for _, g := range inv.groups {
		if err := writeMember(&buf, g.Name, g); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	buf.WriteString(`"` + MetaKey + `":{"hostvars":{`)
	for i, h := range inv.hostOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, h, inv.hostvars[h]); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}}")

	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
