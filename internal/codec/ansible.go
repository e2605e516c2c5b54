package codec

import (
	"fmt"
	"io"
	"strings"

	"netdiagram/internal/domain"

	"gopkg.in/yaml.v3"
)

// AnsibleCodec exports devices as an Ansible YAML inventory
type AnsibleCodec struct{}

// NewAnsibleCodec creates a new Ansible codec
func NewAnsibleCodec() *AnsibleCodec {
	return &AnsibleCodec{}
}

// Format returns the codec format identifier
func (c *AnsibleCodec) Format() string {
	return "ansible"
}

// ansibleInventory represents the Ansible inventory structure
type ansibleInventory struct {
	All ansibleGroup `yaml:"all"`
}

type ansibleGroup struct {
	Children map[string]ansibleGroupDef `yaml:"children,omitempty"`
	Vars     map[string]interface{}     `yaml:"vars,omitempty"`
}

type ansibleGroupDef struct {
	Hosts map[string]ansibleHost `yaml:"hosts,omitempty"`
}

type ansibleHost struct {
	AnsibleHost string                 `yaml:"ansible_host,omitempty"`
	Vars        map[string]interface{} `yaml:",inline"`
}

// Export writes one inventory group per device type. Host names come from
// device names; devices without an IP are listed without ansible_host.
func (c *AnsibleCodec) Export(doc *Document, w io.Writer) error {
	inv := ansibleInventory{
		All: ansibleGroup{
			Children: make(map[string]ansibleGroupDef),
		},
	}

	if doc.ClientName != "" || doc.SiteName != "" {
		inv.All.Vars = map[string]interface{}{}
		if doc.ClientName != "" {
			inv.All.Vars["client_name"] = doc.ClientName
		}
		if doc.SiteName != "" {
			inv.All.Vars["site_name"] = doc.SiteName
		}
	}

	for _, d := range doc.Devices {
		if d == nil {
			continue
		}
		groupName := inventoryName(string(d.Type)) + "s"
		group, ok := inv.All.Children[groupName]
		if !ok {
			group = ansibleGroupDef{Hosts: make(map[string]ansibleHost)}
			inv.All.Children[groupName] = group
		}

		base := inventoryName(d.Name)
		if base == "" {
			base = d.ID
		}
		hostName := base
		for i := 2; ; i++ {
			if _, taken := group.Hosts[hostName]; !taken {
				break
			}
			hostName = fmt.Sprintf("%s_%d", base, i)
		}

		group.Hosts[hostName] = ansibleHost{
			AnsibleHost: d.IP,
			Vars:        hostVars(d),
		}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&inv); err != nil {
		return fmt.Errorf("failed to encode Ansible inventory: %w", err)
	}

	return nil
}

// hostVars collects the non-empty device fields worth carrying into an
// inventory
func hostVars(d *domain.Device) map[string]interface{} {
	vars := map[string]interface{}{
		"device_id":   d.ID,
		"device_type": string(d.Type),
	}
	set := func(key, value string) {
		if value != "" {
			vars[key] = value
		}
	}
	set("display_name", d.Name)
	set("mac", d.MAC)
	set("status", string(d.Status))
	set("vlan", d.VLAN)
	set("manufacturer", d.Manufacturer)
	set("os", d.OS)
	if d.Hardware != nil {
		set("model", d.Model)
		set("serial", d.Serial)
	}
	return vars
}

// inventoryName lowercases s and replaces anything outside [a-z0-9_] with an
// underscore, which is what Ansible accepts for group names.
func inventoryName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
