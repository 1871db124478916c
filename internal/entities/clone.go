package entities

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a copy that shares no pointers with e.
func (e Equipment) Clone() Equipment {
	e.CategoryID = clonePtr(e.CategoryID)
	e.AssignedTo = clonePtr(e.AssignedTo)
	return e
}

func (c EquipmentCategory) Clone() EquipmentCategory {
	c.ParentCategoryID = clonePtr(c.ParentCategoryID)
	return c
}

func (h HistoryEntry) Clone() HistoryEntry {
	h.FromStatus = clonePtr(h.FromStatus)
	h.ToStatus = clonePtr(h.ToStatus)
	h.FromLocation = clonePtr(h.FromLocation)
	h.ToLocation = clonePtr(h.ToLocation)
	return h
}

func (r DamageReport) Clone() DamageReport {
	r.ResolvedDate = clonePtr(r.ResolvedDate)
	return r
}

func (r EquipmentRequest) Clone() EquipmentRequest {
	r.ApprovedDate = clonePtr(r.ApprovedDate)
	r.CompletedDate = clonePtr(r.CompletedDate)
	return r
}

func (n Notification) Clone() Notification {
	n.RelatedEquipmentID = clonePtr(n.RelatedEquipmentID)
	return n
}

// CloneAll clones every element of items into a new slice.
func CloneAll[T interface{ Clone() T }](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
