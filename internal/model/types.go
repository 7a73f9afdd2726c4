package model

import (
	"encoding/json"
)

// ResolvedProperty is a single generated member: the sanitized group it was
// declared in, its member name, its type expression and whether the schema
// marks it mandatory.
type ResolvedProperty struct {
	Group     string `json:"group"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Mandatory bool   `json:"mandatory,omitempty"`
}

// GeneratedModel describes one class (or composition interface) ready for
// rendering. ParentClass points to the model of the parent content type;
// Compositions holds the interface models contributed by composition groups
// keyed by class name.
type GeneratedModel struct {
	ClassName     string             `json:"className"`
	InterfaceName string             `json:"interfaceName,omitempty"`
	ParentClass   *GeneratedModel    `json:"parentClass,omitempty"`
	Compositions  Compositions       `json:"compositions"`
	Properties    []ResolvedProperty `json:"properties,omitempty"`
}

// HasParent reports whether the model inherits from a parent class.
func (m *GeneratedModel) HasParent() bool {
	return m != nil && m.ParentClass != nil
}

// InheritedInterfaceNames lists the interface names of the model's
// compositions in insertion order.
func (m *GeneratedModel) InheritedInterfaceNames() []string {
	if m == nil {
		return nil
	}
	all := m.Compositions.All()
	if len(all) == 0 {
		return nil
	}
	names := make([]string, 0, len(all))
	for _, composition := range all {
		names = append(names, composition.InterfaceName)
	}
	return names
}

// Depth returns the number of models in the parent chain, the model included.
func (m *GeneratedModel) Depth() int {
	depth := 0
	for node := m; node != nil; node = node.ParentClass {
		depth++
	}
	return depth
}

// Compositions is an insertion-ordered set of composition models keyed by
// class name. The zero value is ready to use.
type Compositions struct {
	byName map[string]*GeneratedModel
	order  []string
}

// Merge inserts model under its class name. When a composition with the same
// class name already exists, the incoming properties are appended to it and
// the stored entry is returned.
func (c *Compositions) Merge(model *GeneratedModel) *GeneratedModel {
	if model == nil {
		return nil
	}
	if c.byName == nil {
		c.byName = make(map[string]*GeneratedModel)
	}
	if existing, ok := c.byName[model.ClassName]; ok {
		existing.Properties = append(existing.Properties, model.Properties...)
		return existing
	}
	c.byName[model.ClassName] = model
	c.order = append(c.order, model.ClassName)
	return model
}

// Get returns the composition registered under className.
func (c *Compositions) Get(className string) (*GeneratedModel, bool) {
	if c == nil || c.byName == nil {
		return nil, false
	}
	model, ok := c.byName[className]
	return model, ok
}

// Len returns the number of compositions.
func (c *Compositions) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// All returns the compositions in insertion order.
func (c *Compositions) All() []*GeneratedModel {
	if c == nil || len(c.order) == 0 {
		return nil
	}
	out := make([]*GeneratedModel, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// MarshalJSON encodes the set as an ordered array.
func (c Compositions) MarshalJSON() ([]byte, error) {
	all := c.All()
	if all == nil {
		all = []*GeneratedModel{}
	}
	return json.Marshal(all)
}

// UnmarshalJSON decodes an array produced by MarshalJSON.
func (c *Compositions) UnmarshalJSON(data []byte) error {
	var items []*GeneratedModel
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = Compositions{}
	for _, item := range items {
		c.Merge(item)
	}
	return nil
}
