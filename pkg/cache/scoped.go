package cache

// ScopedKeyer wraps a Keyer with a prefix so separate workspaces or
// users get isolated cache namespaces.
//
// Example usage:
//
//	// Workspace-specific keys
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a stored graph document.
func (k *ScopedKeyer) GraphKey(graphID string) string {
	return k.prefix + k.inner.GraphKey(graphID)
}

// HealthKey generates a prefixed key for a validation report.
func (k *ScopedKeyer) HealthKey(graphHash string) string {
	return k.prefix + k.inner.HealthKey(graphHash)
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ExportKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ExportKey(layoutHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(layoutHash, opts)
}
