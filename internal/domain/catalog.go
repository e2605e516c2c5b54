package domain

// DeviceType identifies one of the fixed device variants
type DeviceType string

const (
	DeviceTypeRouter   DeviceType = "router"
	DeviceTypeSwitch   DeviceType = "switch"
	DeviceTypeFirewall DeviceType = "firewall"
	DeviceTypeAP       DeviceType = "ap"
	DeviceTypeServer   DeviceType = "server"
	DeviceTypeVMHost   DeviceType = "vmhost"
	DeviceTypeNAS      DeviceType = "nas"
	DeviceTypeDesktop  DeviceType = "desktop"
	DeviceTypeLaptop   DeviceType = "laptop"
	DeviceTypePrinter  DeviceType = "printer"
	DeviceTypePhone    DeviceType = "phone"
	DeviceTypeTablet   DeviceType = "tablet"
	DeviceTypeCamera   DeviceType = "camera"
	DeviceTypeIoT      DeviceType = "iot"
	DeviceTypeTV       DeviceType = "tv"
	DeviceTypeVoIP     DeviceType = "voip"
	DeviceTypeModem    DeviceType = "modem"
	DeviceTypeInternet DeviceType = "internet"
)

// DeviceTypeInfo is the display metadata for a device type
type DeviceTypeInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DeviceTypes is the device-type catalog
var DeviceTypes = map[DeviceType]DeviceTypeInfo{
	DeviceTypeRouter:   {Name: "Router", Icon: "🌐"},
	DeviceTypeSwitch:   {Name: "Switch", Icon: "🔀"},
	DeviceTypeFirewall: {Name: "Firewall", Icon: "🛡️"},
	DeviceTypeAP:       {Name: "Access Point", Icon: "📶"},
	DeviceTypeServer:   {Name: "Server", Icon: "🖥️"},
	DeviceTypeVMHost:   {Name: "VM Host", Icon: "🗂️"},
	DeviceTypeNAS:      {Name: "NAS", Icon: "💾"},
	DeviceTypeDesktop:  {Name: "Desktop", Icon: "🖥"},
	DeviceTypeLaptop:   {Name: "Laptop", Icon: "💻"},
	DeviceTypePrinter:  {Name: "Printer", Icon: "🖨️"},
	DeviceTypePhone:    {Name: "Phone", Icon: "📱"},
	DeviceTypeTablet:   {Name: "Tablet", Icon: "📲"},
	DeviceTypeCamera:   {Name: "Camera", Icon: "📷"},
	DeviceTypeIoT:      {Name: "IoT Device", Icon: "💡"},
	DeviceTypeTV:       {Name: "Smart TV", Icon: "📺"},
	DeviceTypeVoIP:     {Name: "VoIP Phone", Icon: "☎️"},
	DeviceTypeModem:    {Name: "Modem", Icon: "📡"},
	DeviceTypeInternet: {Name: "Internet", Icon: "☁️"},
}

// importableDeviceTypes lists the types accepted by CSV import. Internet is a
// diagram anchor rather than an inventory item and is excluded.
var importableDeviceTypes = []DeviceType{
	DeviceTypeRouter, DeviceTypeSwitch, DeviceTypeFirewall, DeviceTypeAP,
	DeviceTypeServer, DeviceTypeVMHost, DeviceTypeNAS, DeviceTypeDesktop,
	DeviceTypeLaptop, DeviceTypePrinter, DeviceTypePhone, DeviceTypeTablet,
	DeviceTypeCamera, DeviceTypeIoT, DeviceTypeTV, DeviceTypeVoIP,
	DeviceTypeModem,
}

// ImportableDeviceTypes returns the device types accepted by CSV import
func ImportableDeviceTypes() []DeviceType {
	out := make([]DeviceType, len(importableDeviceTypes))
	copy(out, importableDeviceTypes)
	return out
}

// IsImportableDeviceType reports whether t may appear in a CSV type column.
// The comparison is exact; callers lowercase first.
func IsImportableDeviceType(t DeviceType) bool {
	for _, it := range importableDeviceTypes {
		if it == t {
			return true
		}
	}
	return false
}

// DisplayName returns the catalog name for t, or the raw type string
func (t DeviceType) DisplayName() string {
	if info, ok := DeviceTypes[t]; ok {
		return info.Name
	}
	return string(t)
}

// ZoneType identifies one of the fixed zone variants
type ZoneType string

const (
	ZoneTypeCloud  ZoneType = "cloud"
	ZoneTypeOnPrem ZoneType = "onprem"
	ZoneTypeMDF    ZoneType = "mdf"
	ZoneTypeIDF    ZoneType = "idf"
	ZoneTypeUPS    ZoneType = "ups"
)

// ZoneTypeInfo is the display metadata for a zone type
type ZoneTypeInfo struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ZoneTypes is the zone-type catalog
var ZoneTypes = map[ZoneType]ZoneTypeInfo{
	ZoneTypeCloud:  {Name: "Cloud", Icon: "☁️", Color: "#e3f2fd"},
	ZoneTypeOnPrem: {Name: "On-Premises", Icon: "🏢", Color: "#f3e5f5"},
	ZoneTypeMDF:    {Name: "MDF", Icon: "🗄️", Color: "#e8f5e9"},
	ZoneTypeIDF:    {Name: "IDF", Icon: "📦", Color: "#fff3e0"},
	ZoneTypeUPS:    {Name: "UPS", Icon: "🔋", Color: "#fce4ec"},
}

// Manufacturers holds input suggestions per device type. Values are hints
// only and are never validated against.
var Manufacturers = map[DeviceType][]string{
	DeviceTypeRouter:   {"Cisco", "Juniper", "MikroTik", "Ubiquiti", "Netgear", "TP-Link", "ASUS"},
	DeviceTypeSwitch:   {"Cisco", "Aruba", "Juniper", "Ubiquiti", "Netgear", "TP-Link", "Dell"},
	DeviceTypeFirewall: {"Fortinet", "Palo Alto", "SonicWall", "Sophos", "pfSense", "Cisco"},
	DeviceTypeAP:       {"Ubiquiti", "Aruba", "Cisco Meraki", "Ruckus", "TP-Link", "EnGenius"},
	DeviceTypeServer:   {"Dell", "HPE", "Lenovo", "Supermicro", "Cisco"},
	DeviceTypeVMHost:   {"VMware", "Proxmox", "Microsoft Hyper-V", "Nutanix", "XCP-ng"},
	DeviceTypeNAS:      {"Synology", "QNAP", "TrueNAS", "Western Digital", "Asustor"},
	DeviceTypeDesktop:  {"Dell", "HP", "Lenovo", "Apple", "Custom"},
	DeviceTypeLaptop:   {"Dell", "HP", "Lenovo", "Apple", "Microsoft"},
	DeviceTypePrinter:  {"HP", "Brother", "Canon", "Epson", "Xerox"},
	DeviceTypePhone:    {"Apple", "Samsung", "Google"},
	DeviceTypeTablet:   {"Apple", "Samsung", "Microsoft", "Lenovo"},
	DeviceTypeCamera:   {"Hikvision", "Axis", "Dahua", "Ubiquiti", "Reolink"},
	DeviceTypeIoT:      {"Philips Hue", "Google Nest", "Amazon", "Shelly", "Sonos"},
	DeviceTypeTV:       {"Samsung", "LG", "Sony", "TCL", "Roku"},
	DeviceTypeVoIP:     {"Polycom", "Yealink", "Cisco", "Grandstream", "Avaya"},
	DeviceTypeModem:    {"Arris", "Motorola", "Netgear", "Technicolor", "Zyxel"},
}

// Status is the operational status of a device
type Status string

const (
	StatusOnline      Status = "online"
	StatusOffline     Status = "offline"
	StatusWarning     Status = "warning"
	StatusError       Status = "error"
	StatusMaintenance Status = "maintenance"
)

// Statuses returns every valid device status
func Statuses() []Status {
	return []Status{StatusOnline, StatusOffline, StatusWarning, StatusError, StatusMaintenance}
}

// IsValid reports whether s is one of the fixed statuses
func (s Status) IsValid() bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

// ConnectionMedium is the physical medium of a connection
type ConnectionMedium string

const (
	MediumWired    ConnectionMedium = "wired"
	MediumWireless ConnectionMedium = "wireless"
)

// IsValid reports whether m is wired or wireless
func (m ConnectionMedium) IsValid() bool {
	return m == MediumWired || m == MediumWireless
}

// Side names an attachment edge of a device box
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)
