package teacher

// Ref is the denormalized teacher shape copied onto records for
// display. It is never the authoritative source of teacher data.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RosterCache is a one-shot public-id lookup built from a roster
// fetch. It is consulted, never mutated, while reconciling live
// events, so no locking is needed after construction.
type RosterCache struct {
	byID map[string]Ref
}

// NewRosterCache builds the lookup from a roster slice.
func NewRosterCache(teachers []*Teacher) *RosterCache {
	byID := make(map[string]Ref, len(teachers))
	for _, t := range teachers {
		if t == nil {
			continue
		}
		byID[t.PublicID] = Ref{ID: t.PublicID, Name: t.Name}
	}
	return &RosterCache{byID: byID}
}

// Lookup returns the denormalized ref for id, or nil when the id is
// empty or unknown. The roster fetch and the event stream are not
// transactionally consistent, so misses are expected and not errors.
func (c *RosterCache) Lookup(id string) *Ref {
	if c == nil || id == "" {
		return nil
	}
	ref, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &ref
}

// Len reports how many teachers the snapshot holds.
func (c *RosterCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}
