// Package handler implements the HTTP API for a diagram session.
//
// # Routes
//
// Everything lives under /api/v1 apart from the probes:
//
//	GET    /healthz                     liveness
//	GET    /metrics                     Prometheus exposition
//	GET    /api/v1/state                save document
//	PUT    /api/v1/state?format=yaml    replace the diagram
//	DELETE /api/v1/state                clear the diagram
//	GET    /api/v1/export/{format}      json, yaml, csv or ansible download
//	POST   /api/v1/import/csv           append devices from CSV
//	GET    /api/v1/events               server-sent event stream
//
// plus CRUD for devices, connections, zones, VLANs, SSIDs and snapshots.
//
// # Errors
//
// Errors are JSON shaped {"error":{"code","message"}}. Missing entities map
// to 404, duplicates to 409, rejected input to 422 and a disabled snapshot
// store to 503.
package handler
