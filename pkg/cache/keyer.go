package cache

// Keyer generates cache keys for the pipeline's three stages. Centralizing
// key construction keeps the CLI and server cache-compatible.
type Keyer interface {
	// GraphKey identifies a projected graph view by the catalog objects
	// it was built from.
	GraphKey(catalogHash string, opts GraphKeyOpts) string

	// PlanKey identifies a resolved render plan by the graph it was
	// computed for and the resolver mode.
	PlanKey(graphHash string, opts PlanKeyOpts) string

	// ArtifactKey identifies a rendered artifact by the plan it was
	// painted from.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the options that affect graph projection.
type GraphKeyOpts struct {
	IncludeLists bool `json:"include_lists"`
}

// PlanKeyOpts are the options that affect render-plan resolution.
type PlanKeyOpts struct {
	Mode string `json:"mode"`
}

// ArtifactKeyOpts are the options that affect rendering.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Mode   string `json:"mode"`
}

// DefaultKeyer hashes the identifying inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a projected graph view.
func (k *DefaultKeyer) GraphKey(catalogHash string, opts GraphKeyOpts) string {
	return hashKey("graph", catalogHash, opts)
}

// PlanKey generates a key for a resolved render plan.
func (k *DefaultKeyer) PlanKey(graphHash string, opts PlanKeyOpts) string {
	return hashKey("plan", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different users or deployments can share one Redis instance with
// separate namespaces.
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

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(catalogHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(catalogHash, opts)
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(graphHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(graphHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
