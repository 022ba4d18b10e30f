package interp

// tableEntry is one slot of the open-addressed table (spec.md §3): a
// pointer to an interned-string key object (nil = empty or tombstone,
// distinguished by tombstone), a value and a const flag.
type tableEntry struct {
	key       *Obj
	value     Value
	isConst   bool
	tombstone bool
}

// TableObj is an open-addressed hash map from interned string to Value
// (spec.md §3, "Table"). Grown when count+1 exceeds 75% of capacity;
// initial capacity 8, capacity doubles.
type TableObj struct {
	entries []tableEntry
	count   int // live entries, excludes tombstones
}

const tableInitialCap = 8

// NewTable allocates an empty table object.
func (h *Heap) NewTable() Value {
	o := newObj(h, ObjTable, 0)
	o.Tab = &TableObj{entries: make([]tableEntry, tableInitialCap)}
	return objValue(o)
}

// findSlot is the open-addressed probe shared by insert and lookup
// (spec.md §9 flags the reference's quadratic linear-scan lookup as a
// bug; this rendition probes by hash in both directions).
func (t *TableObj) findSlot(hash uint32, value string) int {
	capacity := len(t.entries)
	idx := int(hash) % capacity
	firstTombstone := -1
	for i := 0; i < capacity; i++ {
		slot := (idx + i) % capacity
		e := &t.entries[slot]
		if e.key == nil {
			if e.tombstone {
				if firstTombstone == -1 {
					firstTombstone = slot
				}
				continue
			}
			if firstTombstone != -1 {
				return firstTombstone
			}
			return slot
		}
		if e.key.Str.Hash == hash && e.key.Str.Value == value {
			return slot
		}
	}
	if firstTombstone != -1 {
		return firstTombstone
	}
	return -1
}

func (h *Heap) growTable(t *TableObj) {
	old := t.entries
	t.entries = make([]tableEntry, len(old)*2)
	t.count = 0
	for _, e := range old {
		if e.key == nil || e.tombstone {
			continue
		}
		h.tableInsert(t, e.key, e.value, e.isConst)
	}
}

func (h *Heap) tableInsert(t *TableObj, key *Obj, v Value, isConst bool) {
	slot := t.findSlot(key.Str.Hash, key.Str.Value)
	e := &t.entries[slot]
	if e.key == nil {
		h.Incref(key)
		t.count++
	} else {
		h.DecrefValue(e.value)
	}
	e.key = key
	e.value = v
	e.isConst = isConst
	e.tombstone = false
}

// Set inserts or overwrites a key (by string content), growing the table
// first if load factor would exceed 75%.
func (h *Heap) Set(t *TableObj, keyStr string, v Value, isConst bool) {
	if (t.count+1)*4 > len(t.entries)*3 {
		h.growTable(t)
	}
	key := h.Intern(keyStr)
	h.tableInsert(t, key.Obj, v, isConst)
	h.Decref(key.Obj) // tableInsert took its own reference
}

// Get looks up key, returning (value, true) if present.
func (t *TableObj) Get(keyStr string) (Value, bool) {
	slot := t.findSlot(fnv1a32(keyStr), keyStr)
	if slot == -1 || t.entries[slot].key == nil {
		return Value{}, false
	}
	return t.entries[slot].value, true
}

// IsConst reports whether keyStr is bound and flagged const.
func (t *TableObj) IsConst(keyStr string) bool {
	slot := t.findSlot(fnv1a32(keyStr), keyStr)
	if slot == -1 || t.entries[slot].key == nil {
		return false
	}
	return t.entries[slot].isConst
}

// Has reports whether keyStr is bound (the `has` builtin).
func (t *TableObj) Has(keyStr string) bool {
	_, ok := t.Get(keyStr)
	return ok
}

// Delete removes keyStr, leaving a tombstone, per spec.md §3.
func (h *Heap) Delete(t *TableObj, keyStr string) bool {
	slot := t.findSlot(fnv1a32(keyStr), keyStr)
	if slot == -1 || t.entries[slot].key == nil {
		return false
	}
	e := &t.entries[slot]
	h.Decref(e.key)
	h.DecrefValue(e.value)
	e.key = nil
	e.value = Value{}
	e.tombstone = true
	t.count--
	return true
}
