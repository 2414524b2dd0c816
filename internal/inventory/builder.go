// Package inventory turns APIC-EM locations and devices into an Ansible
// dynamic inventory.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThomasCrouzet/apicem-inventory/internal/model"
	"github.com/ThomasCrouzet/apicem-inventory/internal/util"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	LocationPath = "/api/v1/location"
	DevicePath   = "/api/v1/network-device"
)

// Client is the subset of the controller session the builder needs.
// *apicem.Session satisfies it.
type Client interface {
	Login(ctx context.Context) (int, gjson.Result, error)
	Get(ctx context.Context, path, scope string) (int, gjson.Result, error)
	Logoff(ctx context.Context) error
}

// Builder assembles an inventory from a controller.
type Builder struct {
	Client         Client
	Scope          string
	SanitizeGroups bool
	Logger         zerolog.Logger
}

// Stats summarizes what a build kept and skipped.
type Stats struct {
	Locations       int
	Devices         int
	Hosts           int
	Orphans         int
	Unreachable     int
	SkippedRecords  int
	ReservedSkipped int
}

// Build runs login, both queries and logoff. It always returns a usable
// inventory: when the controller cannot be queried the result is the empty
// inventory and the error explains why.
func (b *Builder) Build(ctx context.Context) (*model.Inventory, error) {
	inv, _, err := b.BuildWithStats(ctx)
	return inv, err
}

// BuildWithStats is Build that also reports record counts.
func (b *Builder) BuildWithStats(ctx context.Context) (*model.Inventory, Stats, error) {
	var stats Stats

	if _, _, err := b.Client.Login(ctx); err != nil {
		return model.NewInventory(), stats, fmt.Errorf("authenticating: %w", err)
	}
	defer b.logoff(ctx)

	locations, err := b.query(ctx, LocationPath)
	if err != nil {
		return model.NewInventory(), stats, err
	}
	devices, err := b.query(ctx, DevicePath)
	if err != nil {
		return model.NewInventory(), stats, err
	}

	inv := model.NewInventory()
	groups := b.addLocations(inv, locations, &stats)
	b.addDevices(inv, groups, devices, &stats)

	stats.Hosts = len(inv.Hosts())
	stats.Orphans = len(inv.Orphans())
	return inv, stats, nil
}

func (b *Builder) query(ctx context.Context, path string) ([]gjson.Result, error) {
	status, resp, err := b.Client.Get(ctx, path, b.Scope)
	if err != nil {
		return nil, &QueryError{Path: path, Err: err}
	}
	if status >= http.StatusBadRequest {
		return nil, &QueryError{Path: path, Err: fmt.Errorf("controller returned %d: %s", status, errorMessage(resp))}
	}
	if !resp.IsArray() {
		return nil, &QueryError{Path: path, Err: errors.New("response is not a list")}
	}
	return resp.Array(), nil
}

// addLocations creates one group per named location and returns a lookup
// from controller location name to group name.
func (b *Builder) addLocations(inv *model.Inventory, records []gjson.Result, stats *Stats) map[string]string {
	groups := make(map[string]string, len(records))
	for i, rec := range records {
		name, err := parseLocation(i, rec)
		if err != nil {
			stats.SkippedRecords++
			b.Logger.Debug().Err(err).Msg("skipping location")
			continue
		}

		group := name
		if b.SanitizeGroups {
			group = util.SanitizeGroupName(name)
		}
		if group == model.MetaKey {
			stats.ReservedSkipped++
			b.Logger.Warn().Str("location", name).Msg("location name collides with the reserved _meta key, skipping")
			continue
		}

		inv.AddGroup(group)
		groups[name] = group
		stats.Locations++
	}
	return groups
}

func (b *Builder) addDevices(inv *model.Inventory, groups map[string]string, records []gjson.Result, stats *Stats) {
	for i, rec := range records {
		d, err := parseDevice(i, rec)
		if err != nil {
			stats.SkippedRecords++
			b.Logger.Debug().Err(err).Msg("skipping device")
			continue
		}
		stats.Devices++

		if !d.Reachable() {
			stats.Unreachable++
			b.Logger.Debug().Str("host", d.Hostname).Str("status", d.ReachabilityStatus).Msg("device not reachable")
			continue
		}

		if _, seen := inv.HostVars(d.Hostname); seen {
			b.Logger.Debug().Str("host", d.Hostname).Msg("duplicate hostname, keeping the last record")
		}
		inv.SetHostVars(d.Hostname, d.HostVars())

		group, ok := groups[d.LocationName]
		if !ok {
			b.Logger.Debug().Str("host", d.Hostname).Str("location", d.LocationName).Msg("device location unknown, host not grouped")
			continue
		}
		if g, ok := inv.Group(group); ok {
			g.AddHost(d.Hostname)
		}
	}
}

func (b *Builder) logoff(ctx context.Context) {
	if err := b.Client.Logoff(ctx); err != nil {
		b.Logger.Warn().Err(err).Msg("logoff failed")
	}
}

func errorMessage(resp gjson.Result) string {
	if msg := resp.Get("message").String(); msg != "" {
		return msg
	}
	if resp.Raw != "" {
		return resp.Raw
	}
	return "no details"
}
