package domain

import (
	"fmt"
	"strings"
)

// Device is a node on the diagram
type Device struct {
	ID           string     `json:"id" yaml:"id"`
	Type         DeviceType `json:"type" yaml:"type"`
	Name         string     `json:"name" yaml:"name"`
	IP           string     `json:"ip" yaml:"ip"`
	MAC          string     `json:"mac" yaml:"mac"`
	Status       Status     `json:"status" yaml:"status"`
	VLAN         string     `json:"vlan" yaml:"vlan"`
	Notes        string     `json:"notes" yaml:"notes"`
	Manufacturer string     `json:"manufacturer" yaml:"manufacturer"`
	OS           string     `json:"os" yaml:"os"`
	X            float64    `json:"x" yaml:"x"`
	Y            float64    `json:"y" yaml:"y"`

	// VMs is non-nil only for vmhost devices
	VMs []VM `json:"vms" yaml:"vms"`

	*RouterUplink `yaml:",inline"`
	*PortConfig   `yaml:",inline"`
	*SwitchConfig `yaml:",inline"`
	*APConfig     `yaml:",inline"`
	*Hardware     `yaml:",inline"`
}

// RouterUplink describes a router's WAN link
type RouterUplink struct {
	ConnectionType string `json:"connectionType" yaml:"connectionType"`
	DownloadSpeed  string `json:"downloadSpeed" yaml:"downloadSpeed"`
	UploadSpeed    string `json:"uploadSpeed" yaml:"uploadSpeed"`
}

// PortConfig holds the port count of switches and firewalls
type PortConfig struct {
	Ports string `json:"ports" yaml:"ports"`
}

// SwitchConfig holds switch-only settings
type SwitchConfig struct {
	PoE           bool  `json:"poe" yaml:"poe"`
	AssignedVlans []int `json:"assignedVlans" yaml:"assignedVlans"`
}

// APConfig holds the SSIDs broadcast by an access point
type APConfig struct {
	SSIDs []string `json:"ssids" yaml:"ssids"`
}

// Hardware holds optional asset details
type Hardware struct {
	Model  string `json:"model" yaml:"model"`
	Serial string `json:"serial" yaml:"serial"`
}

// VM is a virtual machine hosted on a vmhost device
type VM struct {
	Name   string `json:"name" yaml:"name"`
	Status Status `json:"status" yaml:"status"`
}

// Position returns the top-left corner of the device box
func (d *Device) Position() (x, y float64) {
	return d.X, d.Y
}

// SetProperty assigns a single editable field by its wire name.
// Type-specific fields allocate their payload on first write.
func (d *Device) SetProperty(key, value string) error {
	switch key {
	case "name":
		d.Name = value
	case "ip":
		d.IP = value
	case "mac":
		d.MAC = value
	case "vlan":
		d.VLAN = value
	case "notes":
		d.Notes = value
	case "manufacturer":
		d.Manufacturer = value
	case "os":
		d.OS = value
	case "status":
		s := Status(value)
		if !s.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
		d.Status = s
	case "model":
		d.hardware().Model = value
	case "serial":
		d.hardware().Serial = value
	case "ports":
		if d.PortConfig == nil {
			d.PortConfig = &PortConfig{}
		}
		d.Ports = value
	case "poe":
		d.switchConfig().PoE = ParseYesNo(value)
	case "connectionType":
		d.uplink().ConnectionType = value
	case "downloadSpeed":
		d.uplink().DownloadSpeed = value
	case "uploadSpeed":
		d.uplink().UploadSpeed = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return nil
}

// ParseYesNo reports whether v is "yes" or "true", case-insensitively
func ParseYesNo(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "yes" || v == "true"
}

func (d *Device) hardware() *Hardware {
	if d.Hardware == nil {
		d.Hardware = &Hardware{}
	}
	return d.Hardware
}

func (d *Device) switchConfig() *SwitchConfig {
	if d.SwitchConfig == nil {
		d.SwitchConfig = &SwitchConfig{}
	}
	return d.SwitchConfig
}

func (d *Device) uplink() *RouterUplink {
	if d.RouterUplink == nil {
		d.RouterUplink = &RouterUplink{}
	}
	return d.RouterUplink
}

// ToggleVLAN adds vlanID to a switch's assigned VLANs, or removes it if
// already present.
func (d *Device) ToggleVLAN(vlanID int) error {
	if d.Type != DeviceTypeSwitch {
		return fmt.Errorf("toggle vlan on %s: %w", d.Type, ErrWrongDeviceType)
	}
	sc := d.switchConfig()
	if sc.AssignedVlans == nil {
		sc.AssignedVlans = []int{}
	}
	for i, id := range sc.AssignedVlans {
		if id == vlanID {
			sc.AssignedVlans = append(sc.AssignedVlans[:i], sc.AssignedVlans[i+1:]...)
			return nil
		}
	}
	sc.AssignedVlans = append(sc.AssignedVlans, vlanID)
	return nil
}

// ToggleSSID adds ssid to an access point's broadcast list, or removes it if
// already present.
func (d *Device) ToggleSSID(ssid string) error {
	if d.Type != DeviceTypeAP {
		return fmt.Errorf("toggle ssid on %s: %w", d.Type, ErrWrongDeviceType)
	}
	if d.APConfig == nil {
		d.APConfig = &APConfig{}
	}
	if d.SSIDs == nil {
		d.SSIDs = []string{}
	}
	for i, name := range d.SSIDs {
		if name == ssid {
			d.SSIDs = append(d.SSIDs[:i], d.SSIDs[i+1:]...)
			return nil
		}
	}
	d.SSIDs = append(d.SSIDs, ssid)
	return nil
}

// removeSSID drops ssid from the broadcast list without a type check
func (d *Device) removeSSID(ssid string) {
	if d.APConfig == nil {
		return
	}
	kept := d.SSIDs[:0]
	for _, name := range d.SSIDs {
		if name != ssid {
			kept = append(kept, name)
		}
	}
	d.SSIDs = kept
}

// AddVM appends a virtual machine to a vmhost. An empty status means online.
func (d *Device) AddVM(name string, status Status) error {
	if d.Type != DeviceTypeVMHost {
		return fmt.Errorf("add vm on %s: %w", d.Type, ErrWrongDeviceType)
	}
	if name == "" {
		return fmt.Errorf("vm name: %w", ErrMissingField)
	}
	if status == "" {
		status = StatusOnline
	}
	if d.VMs == nil {
		d.VMs = []VM{}
	}
	d.VMs = append(d.VMs, VM{Name: name, Status: status})
	return nil
}

// RemoveVM deletes the VM at index
func (d *Device) RemoveVM(index int) error {
	if d.Type != DeviceTypeVMHost {
		return fmt.Errorf("remove vm on %s: %w", d.Type, ErrWrongDeviceType)
	}
	if d.VMs == nil || index < 0 || index >= len(d.VMs) {
		return fmt.Errorf("vm %d: %w", index, ErrIndexOutOfRange)
	}
	d.VMs = append(d.VMs[:index], d.VMs[index+1:]...)
	return nil
}
