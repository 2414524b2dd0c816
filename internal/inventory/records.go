package inventory

import (
	"github.com/ThomasCrouzet/apicem-inventory/internal/model"
	"github.com/tidwall/gjson"
)

// Field names in the controller's location and network-device records.
const (
	fieldLocationName       = "locationName"
	fieldHostname           = "hostname"
	fieldManagementIP       = "managementIpAddress"
	fieldMACAddress         = "macAddress"
	fieldUpTime             = "upTime"
	fieldBootDateTime       = "bootDateTime"
	fieldSoftwareVersion    = "softwareVersion"
	fieldReachabilityStatus = "reachabilityStatus"
)

// parseLocation extracts the location name from a location record.
func parseLocation(index int, rec gjson.Result) (string, error) {
	name, ok := field(rec, fieldLocationName)
	if !ok {
		return "", &MissingFieldError{Kind: "location", Index: index, Field: fieldLocationName}
	}
	return name, nil
}

// parseDevice extracts a device from a network-device record. Every field
// the inventory uses is required.
func parseDevice(index int, rec gjson.Result) (model.Device, error) {
	var d model.Device
	targets := []struct {
		name string
		dst  *string
	}{
		{fieldHostname, &d.Hostname},
		{fieldManagementIP, &d.ManagementIP},
		{fieldMACAddress, &d.MACAddress},
		{fieldUpTime, &d.UpTime},
		{fieldBootDateTime, &d.BootDateTime},
		{fieldLocationName, &d.LocationName},
		{fieldSoftwareVersion, &d.SoftwareVersion},
		{fieldReachabilityStatus, &d.ReachabilityStatus},
	}
	for _, tgt := range targets {
		v, ok := field(rec, tgt.name)
		if !ok {
			return model.Device{}, &MissingFieldError{Kind: "device", Index: index, Field: tgt.name}
		}
		*tgt.dst = v
	}
	return d, nil
}

// field returns the string form of a top-level field. Absent and null
// fields are reported as missing; non-string scalars keep their JSON text.
func field(rec gjson.Result, name string) (string, bool) {
	if !rec.IsObject() {
		return "", false
	}
	v := rec.Get(name)
	if !v.Exists() || v.Type == gjson.Null {
		return "", false
	}
	if v.Type == gjson.String {
		return v.Str, true
	}
	return v.Raw, true
}
