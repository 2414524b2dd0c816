package model

// Location is an inventory group built from a controller location.
type Location struct {
	Name  string         `json:"-"`
	Hosts []string       `json:"hosts"`
	Vars  map[string]any `json:"vars"`
}

// NewLocation creates a location with no hosts and no group variables.
func NewLocation(name string) *Location {
	return &Location{
		Name:  name,
		Hosts: []string{},
		Vars:  map[string]any{},
	}
}

// AddHost appends hostname unless the location already lists it.
func (l *Location) AddHost(hostname string) bool {
	for _, h := range l.Hosts {
		if h == hostname {
			return false
		}
	}
	l.Hosts = append(l.Hosts, hostname)
	return true
}
