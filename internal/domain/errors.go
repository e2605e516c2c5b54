package domain

import "errors"

var (
	// ErrUnknownDeviceType is returned when a device type is not in the catalog
	ErrUnknownDeviceType = errors.New("unknown device type")
	// ErrUnknownZoneType is returned when a zone type is not in the catalog
	ErrUnknownZoneType = errors.New("unknown zone type")
	// ErrNotFound is returned when an id or index does not resolve
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange is returned for positional deletes outside [0, len)
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoSelection is returned when an operation needs a selected entity
	ErrNoSelection = errors.New("nothing selected")
	// ErrInvalidStatus is returned for a status outside the fixed set
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidMedium is returned for a connection medium other than wired or wireless
	ErrInvalidMedium = errors.New("invalid connection medium")
	// ErrSelfConnection is returned when both connection endpoints are the same device
	ErrSelfConnection = errors.New("device cannot connect to itself")
	// ErrDuplicateConnection is returned when the device pair is already connected
	ErrDuplicateConnection = errors.New("connection already exists")
	// ErrDuplicateVLAN is returned when a VLAN id is already defined
	ErrDuplicateVLAN = errors.New("vlan id already exists")
	// ErrDuplicateSSID is returned when an SSID name is already defined
	ErrDuplicateSSID = errors.New("ssid already exists")
	// ErrMissingField is returned when a required value is empty
	ErrMissingField = errors.New("required field missing")
	// ErrWrongDeviceType is returned when an operation does not apply to the device type
	ErrWrongDeviceType = errors.New("operation not supported for device type")
	// ErrUnknownField is returned when a property key is not editable
	ErrUnknownField = errors.New("unknown property")
)
