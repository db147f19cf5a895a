package owned

import "github.com/go-nbt/nbt/mutf8"

// Compound is a mutable, owned, order-preserving map from field name to
// Tag. Order is preserved the way a freshly-parsed document's field
// order is, so a round-tripped document reproduces its original byte
// layout field-for-field.
type Compound struct {
	entries []entry
}

type entry struct {
	name mutf8.Str
	tag  Tag
}

// NewEmptyCompound returns an empty compound, ready for Insert.
func NewEmptyCompound() *Compound { return &Compound{} }

// Len returns the number of fields.
func (c *Compound) Len() int { return len(c.entries) }

// IsEmpty reports whether the compound has no fields.
func (c *Compound) IsEmpty() bool { return len(c.entries) == 0 }

// Clear removes every field.
func (c *Compound) Clear() { c.entries = c.entries[:0] }

// Equal reports whether c and other have the same fields, in the same
// order, with equal values — field order is significant because it
// determines wire layout on Write.
func (c *Compound) Equal(other *Compound) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.entries) != len(other.entries) {
		return false
	}
	for i := range c.entries {
		if !c.entries[i].name.Equal(other.entries[i].name) {
			return false
		}
		if !c.entries[i].tag.Equal(other.entries[i].tag) {
			return false
		}
	}
	return true
}

func (c *Compound) indexOf(name string) int {
	for i := range c.entries {
		if c.entries[i].name.Equal(mutf8.FromString(name)) {
			return i
		}
	}
	return -1
}

// Contains reports whether name is present.
func (c *Compound) Contains(name string) bool { return c.indexOf(name) >= 0 }

// Get returns the tag stored under name.
func (c *Compound) Get(name string) (Tag, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return Tag{}, false
	}
	return c.entries[i].tag, true
}

// GetMut returns a pointer to the tag stored under name, for in-place
// mutation (use the Tag.SetXxx methods, or overwrite *Tag entirely).
func (c *Compound) GetMut(name string) (*Tag, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return &c.entries[i].tag, true
}

// Take removes the value stored under name by swapping it with a
// placeholder KindEnd tag, leaving the key itself (and field order) in
// place; it returns the tag that was there before the swap.
func (c *Compound) Take(name string) (Tag, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return Tag{}, false
	}
	old := c.entries[i].tag
	c.entries[i].tag = Tag{}
	return old, true
}

// Insert sets name to tag, appending a new field if name was not already
// present. It returns the previous value, if any.
func (c *Compound) Insert(name string, tag Tag) (Tag, bool) {
	i := c.indexOf(name)
	if i >= 0 {
		old := c.entries[i].tag
		c.entries[i].tag = tag
		return old, true
	}
	c.entries = append(c.entries, entry{name: mutf8.FromString(name), tag: tag})
	return Tag{}, false
}

// Remove deletes the field stored under name entirely, shifting later
// fields down to keep the remaining order contiguous. It returns the
// removed tag, if any.
func (c *Compound) Remove(name string) (Tag, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return Tag{}, false
	}
	old := c.entries[i].tag
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return old, true
}

// Keys returns the field names in order.
func (c *Compound) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.name.String()
	}
	return keys
}

// Values returns the field values in order.
func (c *Compound) Values() []Tag {
	vals := make([]Tag, len(c.entries))
	for i, e := range c.entries {
		vals[i] = e.tag
	}
	return vals
}

// Each calls fn for every field in order, stopping early if fn returns
// false.
func (c *Compound) Each(fn func(name string, tag Tag) bool) {
	for _, e := range c.entries {
		if !fn(e.name.String(), e.tag) {
			return
		}
	}
}

// EachMut calls fn for every field in order with a pointer to its tag,
// stopping early if fn returns false.
func (c *Compound) EachMut(fn func(name string, tag *Tag) bool) {
	for i := range c.entries {
		if !fn(c.entries[i].name.String(), &c.entries[i].tag) {
			return
		}
	}
}

func (c *Compound) Byte(name string) (int8, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Byte()
}

func (c *Compound) Short(name string) (int16, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Short()
}

func (c *Compound) Int(name string) (int32, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Int()
}

func (c *Compound) Long(name string) (int64, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Long()
}

func (c *Compound) Float(name string) (float32, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Float()
}

func (c *Compound) Double(name string) (float64, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Double()
}

func (c *Compound) Str(name string) (mutf8.Str, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return t.Str()
}

func (c *Compound) CompoundField(name string) (*Compound, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return t.Compound()
}

func (c *Compound) ListField(name string) (List, bool) {
	t, ok := c.Get(name)
	if !ok {
		return List{}, false
	}
	return t.List()
}
