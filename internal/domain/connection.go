package domain

import "fmt"

// Connection is an undirected link between two devices, attached to a named
// side of each device box.
type Connection struct {
	ID      string           `json:"id" yaml:"id"`
	From    string           `json:"from" yaml:"from"`
	FromPos Side             `json:"fromPos" yaml:"fromPos"`
	To      string           `json:"to" yaml:"to"`
	ToPos   Side             `json:"toPos" yaml:"toPos"`
	Type    ConnectionMedium `json:"type" yaml:"type"`
}

// Involves checks if this connection touches the given device ID
func (c *Connection) Involves(deviceID string) bool {
	return c.From == deviceID || c.To == deviceID
}

// OtherEnd returns the device ID on the other end of this connection
func (c *Connection) OtherEnd(deviceID string) string {
	if c.From == deviceID {
		return c.To
	}
	return c.From
}

// Links reports whether the connection joins a and b in either direction
func (c *Connection) Links(a, b string) bool {
	return (c.From == a && c.To == b) || (c.From == b && c.To == a)
}

// AddConnection links two existing devices using the current default medium
func (s *State) AddConnection(fromID string, fromPos Side, toID string, toPos Side) (*Connection, error) {
	if fromID == toID {
		return nil, fmt.Errorf("connect %s: %w", fromID, ErrSelfConnection)
	}
	for _, c := range s.Connections {
		if c.Links(fromID, toID) {
			return nil, fmt.Errorf("connect %s-%s: %w", fromID, toID, ErrDuplicateConnection)
		}
	}
	if s.Device(fromID) == nil {
		return nil, fmt.Errorf("device %s: %w", fromID, ErrNotFound)
	}
	if s.Device(toID) == nil {
		return nil, fmt.Errorf("device %s: %w", toID, ErrNotFound)
	}

	conn := &Connection{
		ID:      s.connectionID(),
		From:    fromID,
		FromPos: fromPos,
		To:      toID,
		ToPos:   toPos,
		Type:    s.ConnType,
	}
	s.Connections = append(s.Connections, conn)
	return conn, nil
}

// connectionID returns "conn<millis>", suffixed when a connection created in
// the same millisecond already holds that id.
func (s *State) connectionID() string {
	base := fmt.Sprintf("conn%d", nowMillis())
	id := base
	for n := 1; s.connectionIndex(id) >= 0; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

func (s *State) connectionIndex(id string) int {
	for i, c := range s.Connections {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// DeleteConnection removes a single connection by id
func (s *State) DeleteConnection(id string) error {
	i := s.connectionIndex(id)
	if i < 0 {
		return fmt.Errorf("connection %s: %w", id, ErrNotFound)
	}
	s.Connections = append(s.Connections[:i], s.Connections[i+1:]...)
	return nil
}

// DeviceConnections returns every connection touching id, in creation order
func (s *State) DeviceConnections(id string) []*Connection {
	var result []*Connection
	for _, c := range s.Connections {
		if c.Involves(id) {
			result = append(result, c)
		}
	}
	return result
}

// ConnectedDevices returns the device at the far end of each connection
// touching id. Endpoints that no longer resolve are skipped.
func (s *State) ConnectedDevices(id string) []*Device {
	var result []*Device
	for _, c := range s.DeviceConnections(id) {
		if d := s.Device(c.OtherEnd(id)); d != nil {
			result = append(result, d)
		}
	}
	return result
}

// SetConnectionType changes the medium applied to new connections
func (s *State) SetConnectionType(m ConnectionMedium) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMedium, m)
	}
	s.ConnType = m
	return nil
}
