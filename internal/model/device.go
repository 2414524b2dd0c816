package model

// ReachableStatus is the only reachabilityStatus value kept in the inventory.
const ReachableStatus = "Reachable"

// Device is a network device as reported by the controller's device listing.
type Device struct {
	Hostname           string
	ManagementIP       string
	MACAddress         string
	UpTime             string
	BootDateTime       string
	LocationName       string
	SoftwareVersion    string
	ReachabilityStatus string
}

// Reachable reports whether the controller can currently reach the device.
func (d Device) Reachable() bool {
	return d.ReachabilityStatus == ReachableStatus
}

// HostVars returns the per-host variables exposed to Ansible.
func (d Device) HostVars() HostVars {
	return HostVars{
		DeviceIP:     d.ManagementIP,
		MACAddress:   d.MACAddress,
		UpTime:       d.UpTime,
		BootDateTime: d.BootDateTime,
		Location:     d.LocationName,
		Software:     d.SoftwareVersion,
	}
}

// HostVars holds the variables of a single inventory host. Field order is
// the order keys appear in the rendered inventory.
type HostVars struct {
	DeviceIP     string `json:"device_ip" yaml:"device_ip"`
	MACAddress   string `json:"macAddress" yaml:"macAddress"`
	UpTime       string `json:"upTime" yaml:"upTime"`
	BootDateTime string `json:"bootDateTime" yaml:"bootDateTime"`
	Location     string `json:"location" yaml:"location"`
	Software     string `json:"software" yaml:"software"`
}
