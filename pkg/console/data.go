package console

import "slices"

// Data is a mapping that remembers insertion order. Setting an existing
// key keeps its position.
type Data struct {
	keys   []string
	values map[string]any
}

// NewData returns an empty mapping.
func NewData() *Data {
	return &Data{values: make(map[string]any)}
}

// Set stores value under key.
func (d *Data) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value under key and whether it is present.
func (d *Data) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Value returns the value under key, or nil.
func (d *Data) Value(key string) any {
	return d.values[key]
}

// Has reports whether key is present.
func (d *Data) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Delete removes key.
func (d *Data) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (d *Data) Keys() []string {
	return slices.Clone(d.keys)
}

// Len is the number of keys.
func (d *Data) Len() int { return len(d.keys) }

// Map returns an unordered copy.
func (d *Data) Map() map[string]any {
	out := make(map[string]any, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy. Values are shared.
func (d *Data) Clone() *Data {
	return &Data{keys: slices.Clone(d.keys), values: d.Map()}
}

// Filter returns the entries keep accepts, in order.
func (d *Data) Filter(keep func(key string, value any) bool) *Data {
	out := NewData()
	for _, k := range d.keys {
		if v := d.values[k]; keep(k, v) {
			out.Set(k, v)
		}
	}
	return out
}
