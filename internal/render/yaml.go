package render

import (
	"bytes"

	"github.com/ThomasCrouzet/apicem-inventory/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes a static Ansible YAML inventory. Grouped hosts go
// under all.children.<group>.hosts with their variables inline; hosts
// without a group go under all.hosts.
type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(inv *model.Inventory) ([]byte, error) {
	children := mapping()
	for _, g := range inv.Groups() {
		hosts := mapping()
		for _, h := range g.Hosts {
			vars, err := hostVarsNode(inv, h)
			if err != nil {
				return nil, err
			}
			appendPair(hosts, h, vars)
		}

		group := mapping()
		appendPair(group, "hosts", hosts)
		if len(g.Vars) > 0 {
			vars := &yaml.Node{}
			if err := vars.Encode(g.Vars); err != nil {
				return nil, err
			}
			appendPair(group, "vars", vars)
		}
		appendPair(children, g.Name, group)
	}

	all := mapping()
	if orphans := inv.Orphans(); len(orphans) > 0 {
		hosts := mapping()
		for _, h := range orphans {
			vars, err := hostVarsNode(inv, h)
			if err != nil {
				return nil, err
			}
			appendPair(hosts, h, vars)
		}
		appendPair(all, "hosts", hosts)
	}
	appendPair(all, "children", children)

	root := mapping()
	appendPair(root, "all", all)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hostVarsNode(inv *model.Inventory, host string) (*yaml.Node, error) {
	vars, _ := inv.HostVars(host)
	n := &yaml.Node{}
	if err := n.Encode(vars); err != nil {
		return nil, err
	}
	return n, nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
