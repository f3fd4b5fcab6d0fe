package source

// SubSourcePolicy resolves one value from a set of redundant model outputs
// for the same sample. The preferred key wins when it has a value, then
// Priority is walked in order.
type SubSourcePolicy struct {
	Preferred string
	Priority  []string
}

// DefaultPriority is the order used when nothing else is configured.
var DefaultPriority = []string{"sg", "noaa", "meto", "smhi", "fcoo"}

func NewSubSourcePolicy(preferred string, priority []string) SubSourcePolicy {
	if len(priority) == 0 {
		priority = DefaultPriority
	}
	return SubSourcePolicy{Preferred: preferred, Priority: priority}
}

// WithPreferred returns a copy of the policy preferring key. An empty key
// keeps the current preference.
func (p SubSourcePolicy) WithPreferred(key string) SubSourcePolicy {
	if key != "" {
		p.Preferred = key
	}
	return p
}

// Resolve picks a value for a single sample. It returns nil when no
// sub-source has one.
func (p SubSourcePolicy) Resolve(values map[string]*float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	if p.Preferred != "" {
		if v := values[p.Preferred]; v != nil {
			return v
		}
	}
	for _, key := range p.Priority {
		if v := values[key]; v != nil {
			return v
		}
	}
	return nil
}
