package domain

import (
	"errors"
	"testing"
)

func TestCreateZone(t *testing.T) {
	t.Run("builds zone with default size", func(t *testing.T) {
		fixedClock(t, 1000)
		s := NewState()

		z, err := s.CreateZone(ZoneTypeCloud, 50, 60)
		if err != nil {
			t.Fatal(err)
		}
		if z.ID != "zone1000_1" {
			t.Errorf("unexpected id %s", z.ID)
		}
		if z.Name != "Cloud 1" {
			t.Errorf("unexpected name %q", z.Name)
		}
		if z.Width != 200 || z.Height != 150 {
			t.Errorf("expected 200x150, got %fx%f", z.Width, z.Height)
		}
		if z.X != 50 || z.Y != 60 {
			t.Errorf("unexpected position (%f, %f)", z.X, z.Y)
		}
	})

	t.Run("attaches type payload", func(t *testing.T) {
		tests := []struct {
			zt    ZoneType
			check func(z *Zone) bool
		}{
			{ZoneTypeCloud, func(z *Zone) bool { return z.CloudDetails != nil && z.UPSDetails == nil }},
			{ZoneTypeUPS, func(z *Zone) bool { return z.UPSDetails != nil && z.SiteDetails == nil }},
			{ZoneTypeMDF, func(z *Zone) bool { return z.SiteDetails != nil && z.IDFDetails == nil }},
			{ZoneTypeOnPrem, func(z *Zone) bool { return z.SiteDetails != nil && z.CloudDetails == nil }},
			{ZoneTypeIDF, func(z *Zone) bool { return z.SiteDetails != nil && z.IDFDetails != nil }},
		}

		for _, tt := range tests {
			s := NewState()
			z, err := s.CreateZone(tt.zt, 0, 0)
			if err != nil {
				t.Fatalf("CreateZone(%s): %v", tt.zt, err)
			}
			if !tt.check(z) {
				t.Errorf("CreateZone(%s) payload mismatch: %+v", tt.zt, z)
			}
		}
	})

	t.Run("unknown type advances counter", func(t *testing.T) {
		s := NewState()
		if _, err := s.CreateZone("basement", 0, 0); !errors.Is(err, ErrUnknownZoneType) {
			t.Errorf("expected ErrUnknownZoneType, got %v", err)
		}
		if s.ZoneCounter != 1 || len(s.Zones) != 0 {
			t.Errorf("expected counter 1 and no zones, got %d/%d", s.ZoneCounter, len(s.Zones))
		}
	})
}

func TestDeleteZone(t *testing.T) {
	s := NewState()
	z, _ := s.CreateZone(ZoneTypeMDF, 0, 0)
	_ = s.SelectZone(z.ID)

	if err := s.DeleteZone(z.ID); err != nil {
		t.Fatal(err)
	}
	if len(s.Zones) != 0 {
		t.Error("expected zone removed")
	}
	if s.SelectedZoneID != "" {
		t.Error("expected zone selection cleared")
	}
	if err := s.DeleteZone(z.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateZoneProperty(t *testing.T) {
	s := NewState()
	if err := s.UpdateZoneProperty("name", "x"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}

	ups, _ := s.CreateZone(ZoneTypeUPS, 0, 0)
	_ = s.SelectZone(ups.ID)

	for k, v := range map[string]string{"name": "Rack UPS", "model": "SMT1500", "capacity": "1500VA", "ip": "10.0.0.50"} {
		if err := s.UpdateZoneProperty(k, v); err != nil {
			t.Fatalf("UpdateZoneProperty(%s): %v", k, err)
		}
	}
	if ups.Name != "Rack UPS" || ups.UPSDetails.Model != "SMT1500" || ups.Capacity != "1500VA" || ups.UPSDetails.IP != "10.0.0.50" {
		t.Errorf("unexpected zone %+v / %+v", ups, ups.UPSDetails)
	}

	if err := s.UpdateZoneProperty("region", "eu-west-1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField for foreign field, got %v", err)
	}

	idf, _ := s.CreateZone(ZoneTypeIDF, 0, 0)
	_ = s.SelectZone(idf.ID)
	if err := s.UpdateZoneProperty("connectedMDF", "zone1"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateZoneProperty("location", "Floor 2"); err != nil {
		t.Fatal(err)
	}
	if idf.ConnectedMDF != "zone1" || idf.Location != "Floor 2" {
		t.Errorf("unexpected idf %+v", idf)
	}
}

func TestMoveAndResizeZone(t *testing.T) {
	s := NewState()
	z, _ := s.CreateZone(ZoneTypeOnPrem, 0, 0)

	if err := s.MoveZone(z.ID, 100, 120); err != nil {
		t.Fatal(err)
	}
	if err := s.ResizeZone(z.ID, 400, 300); err != nil {
		t.Fatal(err)
	}
	if z.X != 100 || z.Y != 120 || z.Width != 400 || z.Height != 300 {
		t.Errorf("unexpected frame %+v", z)
	}
	if err := s.ResizeZone(z.ID, 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	if err := s.MoveZone("missing", 0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
