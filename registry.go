package arraypool

import (
	"reflect"
	"sync"
)

// Registry holds one default pool per element type.
//
// Pools are created on first use and never removed. The zero value is ready
// to use.
type Registry struct {
	opts  []Option
	pools sync.Map // reflect.Type -> *Pool[T]
}

// NewRegistry creates a registry whose pools are built by NewDefault with opts.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{opts: opts}
}

var defaultRegistry Registry

// Shared returns the process-wide default pool for element type T.
func Shared[T any]() *Pool[T] { return SharedFor[T](&defaultRegistry) }

// SharedFor returns the default pool for element type T held by r.
//
// Concurrent first calls for the same T may each build a pool, but only one
// is published and every caller gets that one.
func SharedFor[T any](r *Registry) *Pool[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := r.pools.Load(key); ok {
		return v.(*Pool[T])
	}
	v, _ := r.pools.LoadOrStore(key, NewDefault[T](r.opts...))
	return v.(*Pool[T])
}
