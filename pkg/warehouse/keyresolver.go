package warehouse

// KeyResolver maps a dimension's natural keys to its surrogate keys. Every
// dependent builder resolves foreign keys through one of these, loaded once
// from the already-populated dimension. The miss policy is uniform: a natural
// key absent from the dimension resolves to no key, never to a failure.
type KeyResolver struct {
	keys map[string]int64
}

func NewKeyResolver(keys map[string]int64) KeyResolver {
	if keys == nil {
		keys = make(map[string]int64)
	}
	return KeyResolver{keys: keys}
}

func (r KeyResolver) Resolve(naturalKey string) (int64, bool) {
	id, ok := r.keys[naturalKey]
	return id, ok
}

// ResolveNullable resolves an optional natural key to a nullable surrogate
// key: nil in, or a miss, yields nil out.
func (r KeyResolver) ResolveNullable(naturalKey *string) *int64 {
	if naturalKey == nil {
		return nil
	}
	id, ok := r.keys[*naturalKey]
	if !ok {
		return nil
	}
	return &id
}

func (r KeyResolver) Len() int {
	return len(r.keys)
}
