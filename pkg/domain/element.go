package domain

// Element is the atomic named unit that states are composed of.
// It carries no behavior; the type tag is free-form (e.g. "button",
// "region", "endpoint").
type Element struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ToMap returns a plain map representation for logging and debugging.
// It is not a binding schema.
func (e Element) ToMap() map[string]any {
	return map[string]any{
		"id":   e.ID,
		"name": e.Name,
		"type": e.Type,
	}
}
