// Package domain defines the entity model and editing operations for the
// netdiagram topology editor.
//
// The package holds a single mutable aggregate, State, together with the
// entities it owns: devices, zones, connections, VLANs and SSIDs. Every
// editing operation (create, delete, update, toggle) is a method on State or
// on Device and runs synchronously to completion.
//
// # Registries
//
// DeviceTypes, ZoneTypes and Manufacturers are fixed catalogs initialised at
// package load and never mutated. They drive display names, icons and input
// hints.
//
// # Devices and zones
//
// Device and Zone carry a common base record. Type-specific data lives in
// optional embedded payloads (RouterUplink, PortConfig, SwitchConfig,
// APConfig, Hardware on devices; CloudDetails, UPSDetails, SiteDetails,
// IDFDetails on zones). A nil payload means the fields are absent, and the
// JSON encoding flattens present payloads into the entity object.
//
// # Selection
//
// The selected device and zone are stored as ids and re-resolved on every
// access. A selection whose entity no longer exists reads as "nothing
// selected".
//
// # Errors
//
// Rejected operations return one of the exported sentinel errors and leave
// the state untouched. The single exception is device and zone creation,
// which advances the display counter even when the type is unknown.
//
// State is not safe for concurrent use; callers that share it between
// goroutines must provide their own locking.
package domain
