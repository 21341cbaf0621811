package schemagen

// Factory holds one resolved configuration and constructs Generators bound to
// a specific model. A generator embedding an association inline spawns its
// child through the same factory so the global settings are inherited while
// the model and property-path root change.
type Factory struct {
	cfg Config
}

// Overrides adjusts a single SchemaGenerator construction. PropertyRoot sets
// the $id path prefix for every property the generator emits, which is how
// nested inline sub-objects carry their full path from the document root.
type Overrides struct {
	PropertyRoot     string
	SelectAttributes AttributeSelector
}

// NewFactory resolves and validates the configuration. The supplied value is
// copied; the caller's Config is never mutated.
func NewFactory(cfg Config) (*Factory, error) {
	resolved, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	return &Factory{cfg: resolved}, nil
}

// Config returns the resolved configuration the factory holds.
func (f *Factory) Config() Config {
	return f.cfg
}

// SchemaGenerator constructs a Generator for one model, optionally adjusted
// by at most one Overrides value.
func (f *Factory) SchemaGenerator(model *Model, overrides ...Overrides) (*Generator, error) {
	propertyRoot := ""
	cfg := f.cfg
	if len(overrides) > 0 {
		propertyRoot = overrides[0].PropertyRoot
		if overrides[0].SelectAttributes != nil {
			cfg.SelectAttributes = overrides[0].SelectAttributes
		}
	}
	gen, err := f.generator(model, propertyRoot, nil)
	if err != nil {
		return nil, err
	}
	gen.cfg = cfg
	return gen, nil
}

// generator is the shared constructor used both by SchemaGenerator and by
// inline-embedding recursion; ancestors is the inline chain leading here.
func (f *Factory) generator(model *Model, propertyRoot string, ancestors []string) (*Generator, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		factory:      f,
		cfg:          f.cfg,
		model:        model,
		propertyRoot: propertyRoot,
		ancestors:    ancestors,
	}, nil
}
