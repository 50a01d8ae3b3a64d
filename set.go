package probemap

// Set is a set of strings sharing ProbeMap's table and resize policy.
// It just doesn't store values, only keys.
// The zero value is not usable, create sets with NewSet, NewSetWithSize or
// NewSetFromConfig.
type Set struct {
	table
}

// Returns a new set with the default base size.
func NewSet(opts ...Option) (*Set, error) {
	return NewSetWithSize(DefaultBaseSize, opts...)
}

// Returns a new set with the capacity set to the smallest prime not below
// baseSize. Sizes below 2 are rejected with ErrInvalidSize.
func NewSetWithSize(baseSize int, opts ...Option) (*Set, error) {
	var s Set
	if err := s.init(baseSize, opts...); err != nil {
		return nil, err
	}

	return &s, nil
}

// Returns a new set configured by cfg. Options given here are applied after it.
func NewSetFromConfig(cfg Config, opts ...Option) (*Set, error) {
	return NewSetWithSize(cfg.BaseSize, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Puts a key in the set.
func (s *Set) Add(key string) error {
	return s.set(key, "")
}

// Checks whether a key is in the set.
func (s *Set) Has(key string) bool {
	_, ok := s.get(key)
	return ok
}

func (s *Set) Remove(key string) error {
	return s.delete(key)
}

func (s *Set) ForEach(fn func(key string) bool) {
	s.forEach(func(key, _ string) bool {
		return fn(key)
	})
}
