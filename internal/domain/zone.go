package domain

import "fmt"

// Default zone box size
const (
	DefaultZoneWidth  = 200
	DefaultZoneHeight = 150
)

// Zone is a labelled rectangle grouping devices on the diagram
type Zone struct {
	ID     string   `json:"id" yaml:"id"`
	Type   ZoneType `json:"type" yaml:"type"`
	Name   string   `json:"name" yaml:"name"`
	X      float64  `json:"x" yaml:"x"`
	Y      float64  `json:"y" yaml:"y"`
	Width  float64  `json:"width" yaml:"width"`
	Height float64  `json:"height" yaml:"height"`
	Notes  string   `json:"notes" yaml:"notes"`

	*CloudDetails `yaml:",inline"`
	*UPSDetails   `yaml:",inline"`
	*SiteDetails  `yaml:",inline"`
	*IDFDetails   `yaml:",inline"`
}

// CloudDetails is the payload of cloud zones
type CloudDetails struct {
	Provider string `json:"provider" yaml:"provider"`
	Region   string `json:"region" yaml:"region"`
}

// UPSDetails is the payload of ups zones
type UPSDetails struct {
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Model        string `json:"model" yaml:"model"`
	Capacity     string `json:"capacity" yaml:"capacity"`
	Runtime      string `json:"runtime" yaml:"runtime"`
	IP           string `json:"ip" yaml:"ip"`
}

// SiteDetails is the payload of onprem, mdf and idf zones
type SiteDetails struct {
	Location string `json:"location" yaml:"location"`
}

// IDFDetails links an idf zone to its parent MDF
type IDFDetails struct {
	ConnectedMDF string `json:"connectedMDF" yaml:"connectedMDF"`
}

// Frame returns the zone rectangle
func (z *Zone) Frame() (x, y, width, height float64) {
	return z.X, z.Y, z.Width, z.Height
}

// initDetails attaches the empty payload set for the zone's type
func (z *Zone) initDetails() {
	switch z.Type {
	case ZoneTypeCloud:
		z.CloudDetails = &CloudDetails{}
	case ZoneTypeUPS:
		z.UPSDetails = &UPSDetails{}
	case ZoneTypeMDF, ZoneTypeOnPrem:
		z.SiteDetails = &SiteDetails{}
	case ZoneTypeIDF:
		z.SiteDetails = &SiteDetails{}
		z.IDFDetails = &IDFDetails{}
	}
}

// SetProperty assigns a single editable field by its wire name. Fields that
// do not belong to the zone's type are rejected.
func (z *Zone) SetProperty(key, value string) error {
	switch key {
	case "name":
		z.Name = value
		return nil
	case "notes":
		z.Notes = value
		return nil
	}

	switch {
	case z.CloudDetails != nil && key == "provider":
		z.Provider = value
	case z.CloudDetails != nil && key == "region":
		z.Region = value
	case z.UPSDetails != nil && key == "manufacturer":
		z.UPSDetails.Manufacturer = value
	case z.UPSDetails != nil && key == "model":
		z.UPSDetails.Model = value
	case z.UPSDetails != nil && key == "capacity":
		z.Capacity = value
	case z.UPSDetails != nil && key == "runtime":
		z.Runtime = value
	case z.UPSDetails != nil && key == "ip":
		z.UPSDetails.IP = value
	case z.SiteDetails != nil && key == "location":
		z.Location = value
	case z.IDFDetails != nil && key == "connectedMDF":
		z.ConnectedMDF = value
	default:
		return fmt.Errorf("%w: %q on %s zone", ErrUnknownField, key, z.Type)
	}
	return nil
}
