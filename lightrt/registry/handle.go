package registry

// Handle names one light entity. Indices are recycled after DestroyEntity.
type Handle struct {
	index int
}

var InvalidHandle = Handle{index: -1}

func (h Handle) Index() int { return h.index }

// Record locates an entity's data slot and remembers its source identity.
type Record struct {
	DataIndex int
	SourceID  int
}

var InvalidRecord = Record{DataIndex: -1, SourceID: -1}

func (r Record) Valid() bool {
	return r.DataIndex != -1 && r.SourceID != -1
}
