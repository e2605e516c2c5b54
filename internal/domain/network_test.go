package domain

import (
	"errors"
	"testing"
)

func TestAddVLAN(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		vname   string
		subnet  string
		wantErr error
	}{
		{"valid", 30, "IoT", "192.168.30.0/24", nil},
		{"zero id", 0, "IoT", "192.168.30.0/24", ErrMissingField},
		{"missing name", 30, "", "192.168.30.0/24", ErrMissingField},
		{"missing subnet", 30, "IoT", "", ErrMissingField},
		{"duplicate id", 10, "Other", "10.0.0.0/24", ErrDuplicateVLAN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			err := s.AddVLAN(tt.id, tt.vname, tt.subnet, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddVLAN() error = %v, want %v", err, tt.wantErr)
			}
			want := 3
			if tt.wantErr == nil {
				want = 4
			}
			if len(s.VLANs) != want {
				t.Errorf("expected %d VLANs, got %d", want, len(s.VLANs))
			}
		})
	}
}

func TestDeleteVLAN(t *testing.T) {
	s := NewState()

	for _, idx := range []int{-1, 3} {
		if err := s.DeleteVLAN(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("DeleteVLAN(%d) error = %v", idx, err)
		}
	}
	if err := s.DeleteVLAN(1); err != nil {
		t.Fatal(err)
	}
	if len(s.VLANs) != 2 || s.VLANs[1].ID != 20 {
		t.Errorf("unexpected VLANs %v", s.VLANs)
	}
}

func TestVLANName(t *testing.T) {
	vlans := DefaultVLANs()

	if got := VLANName(vlans, 10); got != "VLAN 10 - Management" {
		t.Errorf("VLANName(10) = %q", got)
	}
	if got := VLANName(vlans, 99); got != "None" {
		t.Errorf("VLANName(99) = %q", got)
	}
}

func TestSSIDs(t *testing.T) {
	t.Run("add validates", func(t *testing.T) {
		s := NewState()
		if err := s.AddSSID("", "wpa2", ""); !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
		if err := s.AddSSID("corp", "wpa2", "10"); err != nil {
			t.Fatal(err)
		}
		if err := s.AddSSID("corp", "wpa3", ""); !errors.Is(err, ErrDuplicateSSID) {
			t.Errorf("expected ErrDuplicateSSID, got %v", err)
		}
		if len(s.SSIDs) != 1 {
			t.Errorf("expected 1 SSID, got %d", len(s.SSIDs))
		}
	})

	t.Run("delete cascades to access points", func(t *testing.T) {
		s := NewState()
		_ = s.AddSSID("corp", "wpa2", "")
		_ = s.AddSSID("guest", "open", "")
		ap1, _ := s.CreateDevice(DeviceTypeAP, 0, 0)
		ap2, _ := s.CreateDevice(DeviceTypeAP, 0, 0)
		bare, _ := s.CreateDevice(DeviceTypeAP, 0, 0)
		_ = ap1.ToggleSSID("corp")
		_ = ap1.ToggleSSID("guest")
		_ = ap2.ToggleSSID("corp")

		if err := s.DeleteSSID(0); err != nil {
			t.Fatal(err)
		}
		if len(s.SSIDs) != 1 || s.SSIDs[0].Name != "guest" {
			t.Errorf("unexpected SSIDs %v", s.SSIDs)
		}
		if len(ap1.SSIDs) != 1 || ap1.SSIDs[0] != "guest" {
			t.Errorf("ap1 SSIDs = %v", ap1.SSIDs)
		}
		if len(ap2.SSIDs) != 0 {
			t.Errorf("ap2 SSIDs = %v", ap2.SSIDs)
		}
		if bare.APConfig != nil {
			t.Error("expected untouched access point to stay without payload")
		}
	})

	t.Run("delete out of range", func(t *testing.T) {
		s := NewState()
		if err := s.DeleteSSID(0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})
}
