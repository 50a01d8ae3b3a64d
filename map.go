package probemap

// ProbeMap is a string to string map built on open addressing with double
// hashing over a prime number of slots.
// It grows by doubling its base size once more than 70% of the slots are
// occupied and halves it when fewer than 10% are, never going below the
// minimum base size. Deleted entries leave tombstones which are dropped on
// every rebuild.
// ProbeMap is not safe for concurrent use.
// The zero value is not usable, create maps with New, NewWithSize or
// NewFromConfig.
type ProbeMap struct {
	table
}

// Returns a new map with the default base size.
func New(opts ...Option) (*ProbeMap, error) {
	return NewWithSize(DefaultBaseSize, opts...)
}

// Returns a new map with the capacity set to the smallest prime not below
// baseSize. Sizes below 2 are rejected with ErrInvalidSize.
func NewWithSize(baseSize int, opts ...Option) (*ProbeMap, error) {
	var pm ProbeMap
	if err := pm.init(baseSize, opts...); err != nil {
		return nil, err
	}

	return &pm, nil
}

// Returns a new map configured by cfg. Options given here are applied after it.
func NewFromConfig(cfg Config, opts ...Option) (*ProbeMap, error) {
	return NewWithSize(cfg.BaseSize, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Returns the value stored for key.
func (pm *ProbeMap) Get(key string) (string, bool) {
	return pm.get(key)
}

// Maps key to value, overwriting a previous value in place.
// An error means the table could not grow and nothing was changed.
func (pm *ProbeMap) Set(key, value string) error {
	return pm.set(key, value)
}

// Deletes a key from the map. Returns ErrKeyNotFound if it's not there.
func (pm *ProbeMap) Delete(key string) error {
	return pm.delete(key)
}

// Calls fn for every entry in slot order until it returns false.
// The map must not be modified from fn.
func (pm *ProbeMap) ForEach(fn func(key, value string) bool) {
	pm.forEach(fn)
}
