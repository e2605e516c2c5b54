package service

import (
	"errors"
	"maps"
	"sync"

	"github.com/rs/zerolog"

	"netdiagram/internal/codec"
	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
	"netdiagram/internal/metrics"
	"netdiagram/internal/repository"
)

// ErrSnapshotsDisabled is returned by snapshot operations when no repository
// is configured
var ErrSnapshotsDisabled = errors.New("snapshot storage is disabled")

// Options tunes layout behaviour
type Options struct {
	// DeviceSize is the rendered device box used for bounds and anchors
	DeviceSize geometry.Size
	// SnapToGrid snaps moved devices and zones to the grid
	SnapToGrid bool
	// Import places devices created by CSV import
	Import codec.Layout
}

// DefaultOptions matches the stock canvas settings
func DefaultOptions() Options {
	return Options{
		DeviceSize: geometry.DefaultDeviceSize,
		SnapToGrid: true,
		Import:     codec.DefaultLayout(),
	}
}

// DiagramService is a single editing session
type DiagramService struct {
	mu         sync.Mutex
	state      *domain.State
	clientName string
	siteName   string

	repo     repository.Repository
	eventBus *EventBus
	metrics  *metrics.Metrics
	log      zerolog.Logger
	opts     Options
}

// NewDiagramService creates a session over a fresh state. repo and m may be
// nil; without a repository snapshot operations return ErrSnapshotsDisabled.
func NewDiagramService(repo repository.Repository, eventBus *EventBus, m *metrics.Metrics, log zerolog.Logger, opts Options) *DiagramService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &DiagramService{
		state:    domain.NewState(),
		repo:     repo,
		eventBus: eventBus,
		metrics:  m,
		log:      log.With().Str("component", "diagram").Logger(),
		opts:     opts,
	}
}

// Events returns the bus the service publishes on
func (s *DiagramService) Events() *EventBus {
	return s.eventBus
}

// commit logs a mutation outcome and, on success, refreshes metrics and
// publishes ev. Callers hold s.mu.
func (s *DiagramService) commit(op string, err error, ev Event) error {
	if err != nil {
		s.log.Debug().Err(err).Str("op", op).Msg("rejected")
		return err
	}
	s.log.Debug().Str("op", op).Msg("applied")
	s.metrics.SetEntityCounts(len(s.state.Devices), len(s.state.Connections), len(s.state.Zones))
	s.eventBus.Publish(ev)
	return nil
}

// Labels returns the client and site names carried by the save document
func (s *DiagramService) Labels() codec.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.Meta{ClientName: s.clientName, SiteName: s.siteName}
}

// SetLabels sets the client and site names
func (s *DiagramService) SetLabels(meta codec.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientName, s.siteName = meta.ClientName, meta.SiteName
	_ = s.commit("set_labels", nil, Event{Type: EventNetworkUpdated, Payload: meta})
}

// Document returns a deep copy of the current save document
func (s *DiagramService) Document() *codec.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentLocked()
}

func (s *DiagramService) documentLocked() *codec.Document {
	doc := codec.ExportState(s.state, s.clientName, s.siteName)

	devices := make([]*domain.Device, len(doc.Devices))
	for i, d := range doc.Devices {
		devices[i] = d.Clone()
	}
	connections := make([]*domain.Connection, len(doc.Connections))
	for i, c := range doc.Connections {
		connections[i] = c.Clone()
	}
	zones := make([]*domain.Zone, len(doc.Zones))
	for i, z := range doc.Zones {
		zones[i] = z.Clone()
	}

	doc.Devices = devices
	doc.Connections = connections
	doc.Zones = zones
	doc.VLANs = append([]domain.VLAN{}, doc.VLANs...)
	doc.SSIDs = append([]domain.SSID{}, doc.SSIDs...)
	doc.Config = maps.Clone(doc.Config)
	return doc
}

// Selection returns copies of the selected device and zone, either of which
// may be nil
func (s *DiagramService) Selection() (*domain.Device, *domain.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SelectedDevice().Clone(), s.state.SelectedZone().Clone()
}

// SelectDevice selects a device by id. Selecting a device does not clear a
// selected zone.
func (s *DiagramService) SelectDevice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.SelectDevice(id)
	return s.commit("select_device", err, Event{Type: EventSelectionChanged, Payload: map[string]string{"device_id": id}})
}

// SelectZone selects a zone by id
func (s *DiagramService) SelectZone(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.SelectZone(id)
	return s.commit("select_zone", err, Event{Type: EventSelectionChanged, Payload: map[string]string{"zone_id": id}})
}

// ClearSelection deselects everything
func (s *DiagramService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ClearSelection()
	_ = s.commit("clear_selection", nil, Event{Type: EventSelectionChanged})
}

// Clear empties the diagram, keeping VLANs, SSIDs and network settings
func (s *DiagramService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Clear()
	_ = s.commit("clear", nil, Event{Type: EventStateCleared})
}
