package codec

import (
	"bytes"
	"testing"

	"netdiagram/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnsibleExport(t *testing.T) {
	doc := &Document{
		ClientName: "Acme",
		Devices: []*domain.Device{
			{ID: "dev1_1", Type: domain.DeviceTypeServer, Name: "Web 01", IP: "10.0.0.10", Status: domain.StatusOnline, OS: "Debian"},
			{ID: "dev1_2", Type: domain.DeviceTypeServer, Name: "web-01", IP: "10.0.0.11", Status: domain.StatusOnline},
			{ID: "dev1_3", Type: domain.DeviceTypeAP, Name: "", Status: domain.StatusOffline,
				Hardware: &domain.Hardware{Model: "U6"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewAnsibleCodec().Export(doc, &buf))

	var inv struct {
		All struct {
			Vars     map[string]any `yaml:"vars"`
			Children map[string]struct {
				Hosts map[string]map[string]any `yaml:"hosts"`
			} `yaml:"children"`
		} `yaml:"all"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &inv))

	assert.Equal(t, "Acme", inv.All.Vars["client_name"])
	assert.NotContains(t, inv.All.Vars, "site_name")

	servers := inv.All.Children["servers"].Hosts
	require.Len(t, servers, 2)
	assert.Equal(t, "10.0.0.10", servers["web_01"]["ansible_host"])
	assert.Equal(t, "Debian", servers["web_01"]["os"])
	assert.Equal(t, "Web 01", servers["web_01"]["display_name"])
	assert.Equal(t, "10.0.0.11", servers["web_01_2"]["ansible_host"])

	aps := inv.All.Children["aps"].Hosts
	require.Contains(t, aps, "dev1_3")
	assert.NotContains(t, aps["dev1_3"], "ansible_host")
	assert.Equal(t, "U6", aps["dev1_3"]["model"])
	assert.Equal(t, "ap", aps["dev1_3"]["device_type"])
}

func TestInventoryName(t *testing.T) {
	assert.Equal(t, "core_switch_1", inventoryName(" Core Switch-1 "))
	assert.Equal(t, "", inventoryName(""))
}
