package domain

// Clone returns a deep copy of d
func (d *Device) Clone() *Device {
	if d == nil {
		return nil
	}
	cp := *d
	if d.VMs != nil {
		cp.VMs = append([]VM{}, d.VMs...)
	}
	if d.RouterUplink != nil {
		u := *d.RouterUplink
		cp.RouterUplink = &u
	}
	if d.PortConfig != nil {
		p := *d.PortConfig
		cp.PortConfig = &p
	}
	if d.SwitchConfig != nil {
		sc := *d.SwitchConfig
		if sc.AssignedVlans != nil {
			sc.AssignedVlans = append([]int{}, sc.AssignedVlans...)
		}
		cp.SwitchConfig = &sc
	}
	if d.APConfig != nil {
		ap := *d.APConfig
		if ap.SSIDs != nil {
			ap.SSIDs = append([]string{}, ap.SSIDs...)
		}
		cp.APConfig = &ap
	}
	if d.Hardware != nil {
		h := *d.Hardware
		cp.Hardware = &h
	}
	return &cp
}

// Clone returns a deep copy of z
func (z *Zone) Clone() *Zone {
	if z == nil {
		return nil
	}
	cp := *z
	if z.CloudDetails != nil {
		c := *z.CloudDetails
		cp.CloudDetails = &c
	}
	if z.UPSDetails != nil {
		u := *z.UPSDetails
		cp.UPSDetails = &u
	}
	if z.SiteDetails != nil {
		s := *z.SiteDetails
		cp.SiteDetails = &s
	}
	if z.IDFDetails != nil {
		i := *z.IDFDetails
		cp.IDFDetails = &i
	}
	return &cp
}

// Clone returns a copy of c
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
