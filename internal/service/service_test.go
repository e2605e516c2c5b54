package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdiagram/internal/codec"
	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
	"netdiagram/internal/metrics"
	"netdiagram/internal/repository"
	"netdiagram/internal/repository/sqlite"
)

func newTestService(t *testing.T, repo repository.Repository) *DiagramService {
	t.Helper()
	return NewDiagramService(repo, NewEventBus(), metrics.New(), zerolog.Nop(), DefaultOptions())
}

func newSQLiteRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// subscribe returns a buffered channel receiving every published event
func subscribe(t *testing.T, svc *DiagramService) chan Event {
	t.Helper()
	ch := make(chan Event, 32)
	svc.Events().Subscribe(ch)
	t.Cleanup(func() { svc.Events().Unsubscribe(ch) })
	return ch
}

func nextEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestDeviceLifecycle(t *testing.T) {
	svc := newTestService(t, nil)
	events := subscribe(t, svc)

	d, err := svc.CreateDevice(domain.DeviceTypeSwitch, 4000, 4000)
	require.NoError(t, err)
	assert.Equal(t, "Switch 1", d.Name)
	assert.Equal(t, EventDeviceCreated, nextEvent(t, events).Type)

	t.Run("returned devices are copies", func(t *testing.T) {
		d.Name = "mutated"
		got, err := svc.Device(d.ID)
		require.NoError(t, err)
		assert.Equal(t, "Switch 1", got.Name)
	})

	t.Run("update applies every property", func(t *testing.T) {
		got, err := svc.UpdateDevice(d.ID, map[string]string{"name": "Core", "ip": "10.0.0.2", "poe": "yes"})
		require.NoError(t, err)
		assert.Equal(t, "Core", got.Name)
		assert.Equal(t, "10.0.0.2", got.IP)
		assert.True(t, got.PoE)
		assert.Equal(t, EventDeviceUpdated, nextEvent(t, events).Type)
	})

	t.Run("update is all or nothing", func(t *testing.T) {
		_, err := svc.UpdateDevice(d.ID, map[string]string{"name": "Edge", "status": "exploded"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)

		got, err := svc.Device(d.ID)
		require.NoError(t, err)
		assert.Equal(t, "Core", got.Name)
	})

	t.Run("move snaps to grid", func(t *testing.T) {
		require.NoError(t, svc.MoveDevice(d.ID, 4011, 4029))
		got, _ := svc.Device(d.ID)
		assert.Equal(t, 4020.0, got.X)
		assert.Equal(t, 4020.0, got.Y)
	})

	t.Run("toggles", func(t *testing.T) {
		require.NoError(t, svc.ToggleVLAN(d.ID, 10))
		got, _ := svc.Device(d.ID)
		assert.Equal(t, []int{10}, got.AssignedVlans)

		assert.ErrorIs(t, svc.ToggleSSID(d.ID, "corp"), domain.ErrWrongDeviceType)
		assert.ErrorIs(t, svc.ToggleVLAN("missing", 10), domain.ErrNotFound)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.CreateDevice("toaster", 0, 0)
		assert.ErrorIs(t, err, domain.ErrUnknownDeviceType)
	})

	require.NoError(t, svc.DeleteDevice(d.ID))
	assert.Empty(t, svc.Devices())
	assert.ErrorIs(t, svc.DeleteDevice(d.ID), domain.ErrNotFound)
}

func TestVMs(t *testing.T) {
	svc := newTestService(t, nil)
	host, err := svc.CreateDevice(domain.DeviceTypeVMHost, 0, 0)
	require.NoError(t, err)

	require.NoError(t, svc.AddVM(host.ID, "web", ""))
	require.NoError(t, svc.AddVM(host.ID, "db", domain.StatusOffline))
	require.NoError(t, svc.RemoveVM(host.ID, 0))

	got, _ := svc.Device(host.ID)
	assert.Equal(t, []domain.VM{{Name: "db", Status: domain.StatusOffline}}, got.VMs)
	assert.ErrorIs(t, svc.RemoveVM(host.ID, 5), domain.ErrIndexOutOfRange)
}

func TestSelection(t *testing.T) {
	svc := newTestService(t, nil)
	d, err := svc.CreateDevice(domain.DeviceTypeServer, 0, 0)
	require.NoError(t, err)
	z, err := svc.CreateZone(domain.ZoneTypeMDF, 0, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateSelectedDevice("name", "x"), domain.ErrNoSelection)

	require.NoError(t, svc.SelectDevice(d.ID))
	require.NoError(t, svc.SelectZone(z.ID))
	require.NoError(t, svc.UpdateSelectedDevice("name", "File server"))
	require.NoError(t, svc.SetSelectedStatus(domain.StatusWarning))
	require.NoError(t, svc.UpdateSelectedZone("location", "Basement"))

	selDev, selZone := svc.Selection()
	require.NotNil(t, selDev)
	require.NotNil(t, selZone)
	assert.Equal(t, "File server", selDev.Name)
	assert.Equal(t, domain.StatusWarning, selDev.Status)
	assert.Equal(t, "Basement", selZone.Location)

	svc.ClearSelection()
	selDev, selZone = svc.Selection()
	assert.Nil(t, selDev)
	assert.Nil(t, selZone)

	assert.ErrorIs(t, svc.SelectDevice("missing"), domain.ErrNotFound)
}

func TestConnections(t *testing.T) {
	svc := newTestService(t, nil)
	router, _ := svc.CreateDevice(domain.DeviceTypeRouter, 4000, 4000)
	sw, _ := svc.CreateDevice(domain.DeviceTypeSwitch, 4200, 4000)
	ap, _ := svc.CreateDevice(domain.DeviceTypeAP, 4400, 4000)

	conn, err := svc.AddConnection(router.ID, domain.SideRight, sw.ID, domain.SideLeft)
	require.NoError(t, err)
	assert.Equal(t, domain.MediumWired, conn.Type)

	require.NoError(t, svc.SetConnectionType(domain.MediumWireless))
	assert.Equal(t, domain.MediumWireless, svc.ConnectionType())
	assert.ErrorIs(t, svc.SetConnectionType("carrier-pigeon"), domain.ErrInvalidMedium)

	wifi, err := svc.AddConnection(sw.ID, domain.SideRight, ap.ID, domain.SideLeft)
	require.NoError(t, err)
	assert.Equal(t, domain.MediumWireless, wifi.Type)

	_, err = svc.AddConnection(sw.ID, domain.SideTop, router.ID, domain.SideTop)
	assert.ErrorIs(t, err, domain.ErrDuplicateConnection)

	peers, err := svc.ConnectedDevices(sw.ID)
	require.NoError(t, err)
	assert.Len(t, peers, 2)

	conns, err := svc.DeviceConnections(router.ID)
	require.NoError(t, err)
	assert.Len(t, conns, 1)

	path, err := svc.ConnectionPath(conn.ID)
	require.NoError(t, err)
	assert.Equal(t, "M4120,4040 C4160,4040 4160,4040 4200,4040", path)

	_, err = svc.ConnectionPath("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteDevice(sw.ID))
	assert.Empty(t, svc.Connections(), "deleting a device drops its connections")
}

func TestZones(t *testing.T) {
	svc := newTestService(t, nil)
	z, err := svc.CreateZone(domain.ZoneTypeCloud, 3900, 3900)
	require.NoError(t, err)
	assert.Equal(t, 200.0, z.Width)

	got, err := svc.UpdateZone(z.ID, map[string]string{"provider": "AWS", "region": "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "AWS", got.Provider)

	_, err = svc.UpdateZone(z.ID, map[string]string{"name": "Prod", "location": "rack 4"})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
	got, _ = svc.Zone(z.ID)
	assert.NotEqual(t, "Prod", got.Name, "failed update leaves the zone unchanged")

	require.NoError(t, svc.MoveZone(z.ID, 3811, 3809))
	require.NoError(t, svc.ResizeZone(z.ID, 301, 219))
	got, _ = svc.Zone(z.ID)
	assert.Equal(t, []float64{3820, 3800, 300, 220}, []float64{got.X, got.Y, got.Width, got.Height})

	require.NoError(t, svc.DeleteZone(z.ID))
	assert.Empty(t, svc.Zones())
	_, err = svc.Zone(z.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNetwork(t *testing.T) {
	svc := newTestService(t, nil)
	ap, _ := svc.CreateDevice(domain.DeviceTypeAP, 0, 0)

	assert.Len(t, svc.VLANs(), 3)
	require.NoError(t, svc.AddVLAN(domain.VLAN{ID: 30, Name: "IoT", Subnet: "192.168.30.0/24"}))
	assert.ErrorIs(t, svc.AddVLAN(domain.VLAN{ID: 30, Name: "Dup", Subnet: "10.0.0.0/8"}), domain.ErrDuplicateVLAN)
	require.NoError(t, svc.DeleteVLAN(0))
	assert.Len(t, svc.VLANs(), 3)

	require.NoError(t, svc.AddSSID(domain.SSID{Name: "corp", Security: "WPA2"}))
	require.NoError(t, svc.ToggleSSID(ap.ID, "corp"))
	require.NoError(t, svc.DeleteSSID(0))
	got, _ := svc.Device(ap.ID)
	assert.Empty(t, got.SSIDs, "deleted ssid is withdrawn from access points")

	svc.UpdateNetworkConfig(map[string]any{"domain": "corp.local"})
	cfg := svc.NetworkConfig()
	assert.Equal(t, "corp.local", cfg["domain"])
	assert.Equal(t, "8.8.8.8", cfg["primaryDns"])
}

func TestViewAndBounds(t *testing.T) {
	svc := newTestService(t, nil)

	_, ok := svc.Bounds()
	assert.False(t, ok)

	v := svc.SetView(codec.View{Zoom: 10, PanX: 5, PanY: 6})
	assert.Equal(t, geometry.MaxZoom, v.Zoom)

	svc.SetView(codec.View{Zoom: 1})
	v = svc.ZoomAt(2, 100, 100)
	assert.Equal(t, codec.View{Zoom: 2, PanX: -100, PanY: -100}, v)
	assert.Equal(t, v, svc.View())

	_, err := svc.CreateDevice(domain.DeviceTypeServer, 100, 100)
	require.NoError(t, err)
	_, err = svc.CreateZone(domain.ZoneTypeOnPrem, 0, 50)
	require.NoError(t, err)

	b, ok := svc.Bounds()
	require.True(t, ok)
	assert.Equal(t, geometry.Bounds{MinX: 0, MinY: 50, MaxX: 220, MaxY: 200}, b)
}

func TestInterchange(t *testing.T) {
	src := newTestService(t, nil)
	src.SetLabels(codec.Meta{ClientName: "Acme", SiteName: "HQ"})
	router, _ := src.CreateDevice(domain.DeviceTypeRouter, 4000, 4000)
	sw, _ := src.CreateDevice(domain.DeviceTypeSwitch, 4200, 4000)
	_, err := src.AddConnection(router.ID, domain.SideRight, sw.ID, domain.SideLeft)
	require.NoError(t, err)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, src.Export(format, &buf))

			dst := newTestService(t, nil)
			events := subscribe(t, dst)
			meta, err := dst.Import(format, &buf)
			require.NoError(t, err)
			assert.Equal(t, codec.Meta{ClientName: "Acme", SiteName: "HQ"}, meta)
			assert.Equal(t, meta, dst.Labels())
			assert.Len(t, dst.Devices(), 2)
			assert.Len(t, dst.Connections(), 1)
			assert.Equal(t, EventStateImported, nextEvent(t, events).Type)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		assert.ErrorIs(t, src.Export("xml", &bytes.Buffer{}), ErrUnknownFormat)
		_, err := src.Import("csv", strings.NewReader(""))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := src.Import("json", strings.NewReader("{"))
		assert.Error(t, err)
		assert.Len(t, src.Devices(), 2)
	})

	t.Run("csv import", func(t *testing.T) {
		svc := newTestService(t, nil)
		added, err := svc.ImportCSVFrom(strings.NewReader("name,type,ip\nGateway,router,10.0.0.1\nCore,switch,10.0.0.2\n"))
		require.NoError(t, err)
		require.Len(t, added, 2)
		assert.Equal(t, "Gateway", added[0].Name)
		assert.Equal(t, "10.0.0.2", added[1].IP)
		assert.Len(t, svc.Devices(), 2)

		var buf bytes.Buffer
		require.NoError(t, svc.Export("csv", &buf))
		assert.Contains(t, buf.String(), "router,Gateway,10.0.0.1")
	})
}

func TestDocumentIsDetached(t *testing.T) {
	svc := newTestService(t, nil)
	d, _ := svc.CreateDevice(domain.DeviceTypeSwitch, 0, 0)
	require.NoError(t, svc.ToggleVLAN(d.ID, 10))

	doc := svc.Document()
	doc.Devices[0].AssignedVlans[0] = 99
	doc.VLANs[0].Name = "changed"
	doc.Config["domain"] = "changed"

	got, _ := svc.Device(d.ID)
	assert.Equal(t, []int{10}, got.AssignedVlans)
	assert.Equal(t, "Default", svc.VLANs()[0].Name)
	assert.Equal(t, "", svc.NetworkConfig()["domain"])
}

func TestClear(t *testing.T) {
	svc := newTestService(t, nil)
	_, _ = svc.CreateDevice(domain.DeviceTypeServer, 0, 0)
	require.NoError(t, svc.AddSSID(domain.SSID{Name: "corp"}))

	svc.Clear()
	assert.Empty(t, svc.Devices())
	assert.Len(t, svc.SSIDs(), 1)

	d, err := svc.CreateDevice(domain.DeviceTypeServer, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Server 1", d.Name, "counter restarts after clear")
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without repository", func(t *testing.T) {
		svc := newTestService(t, nil)
		_, err := svc.SaveSnapshot(ctx, "x")
		assert.ErrorIs(t, err, ErrSnapshotsDisabled)
		_, err = svc.ListSnapshots(ctx)
		assert.ErrorIs(t, err, ErrSnapshotsDisabled)
		_, err = svc.RestoreSnapshot(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrSnapshotsDisabled)
		assert.ErrorIs(t, svc.DeleteSnapshot(ctx, uuid.New()), ErrSnapshotsDisabled)
	})

	t.Run("save and restore", func(t *testing.T) {
		svc := newTestService(t, newSQLiteRepo(t))
		events := subscribe(t, svc)

		_, err := svc.SaveSnapshot(ctx, "")
		assert.ErrorIs(t, err, domain.ErrMissingField)

		svc.SetLabels(codec.Meta{ClientName: "Acme", SiteName: "HQ"})
		nextEvent(t, events)
		_, _ = svc.CreateDevice(domain.DeviceTypeRouter, 0, 0)
		nextEvent(t, events)

		snap, err := svc.SaveSnapshot(ctx, "baseline")
		require.NoError(t, err)
		assert.Equal(t, 1, snap.DeviceCount)
		assert.Equal(t, "Acme", snap.ClientName)
		assert.Equal(t, EventSnapshotSaved, nextEvent(t, events).Type)

		list, err := svc.ListSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, snap.ID, list[0].ID)

		svc.Clear()
		svc.SetLabels(codec.Meta{})
		meta, err := svc.RestoreSnapshot(ctx, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "HQ", meta.SiteName)
		assert.Len(t, svc.Devices(), 1)

		require.NoError(t, svc.DeleteSnapshot(ctx, snap.ID))
		assert.ErrorIs(t, svc.DeleteSnapshot(ctx, snap.ID), repository.ErrNotFound)
		_, err = svc.RestoreSnapshot(ctx, snap.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
