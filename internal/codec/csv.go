package codec

import (
	"fmt"
	"io"
	"strings"

	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
)

// CSVGridPitch is the spacing between devices laid out by a CSV import
const CSVGridPitch = 160

// CSVHeader is the fixed column set written by ExportDevicesToCSV
var CSVHeader = []string{
	"Type", "Name", "IP Address", "MAC Address", "Manufacturer", "Model", "OS",
	"Serial Number", "Ports", "PoE", "Connection Type", "Download Mbps",
	"Upload Mbps", "VLAN ID", "Status", "Notes",
}

// Row is one CSV data line keyed by normalised header cell
type Row map[string]string

// first returns the first non-empty value among keys
func (r Row) first(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

// Layout places imported devices on a grid
type Layout struct {
	GridColumns int
	StartX      float64
	StartY      float64
	Snap        bool
}

// DefaultLayout is five columns starting at the canvas offset with snapping
func DefaultLayout() Layout {
	return Layout{
		GridColumns: 5,
		StartX:      geometry.CanvasOffset,
		StartY:      geometry.CanvasOffset,
		Snap:        true,
	}
}

// ParseCSVLine splits a line on commas outside double quotes. A doubled quote
// inside a quoted field is a literal quote. Each field is trimmed.
func ParseCSVLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(cur.String()))
}

// ParseCSVContent parses a device CSV. Blank and '#' lines are skipped, the
// first remaining line is the header, and only rows whose type names an
// importable device type are returned.
func ParseCSVContent(content string) []Row {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, line)
	}

	rows := []Row{}
	if len(lines) < 2 {
		return rows
	}

	header := ParseCSVLine(lines[0])
	for i, h := range header {
		header[i] = strings.Join(strings.Fields(strings.ToLower(h)), "")
	}

	for _, line := range lines[1:] {
		values := ParseCSVLine(line)
		row := make(Row, len(header))
		for i, key := range header {
			if i < len(values) {
				row[key] = values[i]
			} else {
				row[key] = ""
			}
		}

		if domain.IsImportableDeviceType(domain.DeviceType(strings.ToLower(row["type"]))) {
			rows = append(rows, row)
		}
	}

	return rows
}

// CSVRowToDevice builds the device for the index-th imported row. counter is
// the device counter value used in the default name.
func CSVRowToDevice(row Row, index, counter int, layout Layout) *domain.Device {
	cols := layout.GridColumns
	if cols <= 0 {
		cols = 1
	}
	col, rowNum := index%cols, index/cols
	pos := geometry.Snap(geometry.Point{
		X: layout.StartX + float64(col*CSVGridPitch),
		Y: layout.StartY + float64(rowNum*CSVGridPitch),
	}, layout.Snap)

	deviceType := domain.DeviceType(strings.ToLower(row["type"]))

	name := row["name"]
	if name == "" {
		name = fmt.Sprintf("%s %d", deviceType.DisplayName(), counter)
	}

	status := domain.Status(strings.ToLower(row["status"]))
	if !status.IsValid() {
		status = domain.StatusOnline
	}

	d := &domain.Device{
		ID:           fmt.Sprintf("dev%d_%d", clock().UnixMilli(), index),
		Type:         deviceType,
		Name:         name,
		IP:           row.first("ipaddress", "ip"),
		MAC:          row.first("macaddress", "mac"),
		Status:       status,
		VLAN:         row.first("vlanid", "vlan"),
		Notes:        row["notes"],
		Manufacturer: row["manufacturer"],
		OS:           row["os"],
		X:            pos.X,
		Y:            pos.Y,
	}

	if model, serial := row["model"], row.first("serialnumber", "serial"); model != "" || serial != "" {
		d.Hardware = &domain.Hardware{Model: model, Serial: serial}
	}

	switch deviceType {
	case domain.DeviceTypeRouter:
		d.RouterUplink = &domain.RouterUplink{
			ConnectionType: row.first("connectiontype"),
			DownloadSpeed:  row.first("downloadmbps", "downloadspeed"),
			UploadSpeed:    row.first("uploadmbps", "uploadspeed"),
		}
	case domain.DeviceTypeSwitch:
		d.PortConfig = &domain.PortConfig{Ports: row["ports"]}
		d.SwitchConfig = &domain.SwitchConfig{
			PoE:           domain.ParseYesNo(row["poe"]),
			AssignedVlans: []int{},
		}
	case domain.DeviceTypeFirewall:
		d.PortConfig = &domain.PortConfig{Ports: row["ports"]}
	case domain.DeviceTypeVMHost:
		d.VMs = []domain.VM{}
	}

	return d
}

// ImportCSV parses content and appends one device per accepted row to s,
// bumping the device counter for each. It returns the new devices.
func ImportCSV(s *domain.State, content string, layout Layout) []*domain.Device {
	rows := ParseCSVContent(content)
	added := make([]*domain.Device, 0, len(rows))

	for i, row := range rows {
		s.Counter++
		d := CSVRowToDevice(row, i, s.Counter, layout)
		if s.Device(d.ID) != nil {
			d.ID = fmt.Sprintf("%s_%d", d.ID, s.Counter)
		}
		s.AddDevice(d)
		added = append(added, d)
	}

	return added
}

// EscapeCSVCell quotes v when it contains a comma, quote or newline
func EscapeCSVCell(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// ExportDevicesToCSV renders devices under CSVHeader, one row each, joined by
// newlines with no trailing newline.
func ExportDevicesToCSV(devices []*domain.Device) string {
	lines := make([]string, 0, len(devices)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))

	for _, d := range devices {
		if d == nil {
			continue
		}
		cells := deviceCells(d)
		for i, c := range cells {
			cells[i] = EscapeCSVCell(c)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

func deviceCells(d *domain.Device) []string {
	var model, serial, ports, poe, connType, down, up string
	if d.Hardware != nil {
		model, serial = d.Model, d.Serial
	}
	if d.PortConfig != nil {
		ports = d.Ports
	}
	if d.SwitchConfig != nil && d.PoE {
		poe = "yes"
	}
	if d.RouterUplink != nil {
		connType, down, up = d.ConnectionType, d.DownloadSpeed, d.UploadSpeed
	}

	return []string{
		string(d.Type), d.Name, d.IP, d.MAC, d.Manufacturer, model, d.OS,
		serial, ports, poe, connType, down, up, d.VLAN, string(d.Status), d.Notes,
	}
}

// CSVCodec exports the devices of a document as CSV
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Format returns the codec format identifier
func (c *CSVCodec) Format() string {
	return "csv"
}

// Export writes the document's devices
func (c *CSVCodec) Export(doc *Document, w io.Writer) error {
	if _, err := io.WriteString(w, ExportDevicesToCSV(doc.Devices)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
