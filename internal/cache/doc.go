// Package cache provides a generic reference-counted cache.
//
// # RefCache[K, V]
//
// RefCache shares one value between all holders of an equal key. The value is
// created on first Acquire and handed back to the caller for destruction when
// the last holder releases it.
//
//	c := cache.NewRef[Desc, *Sampler]()
//	s, err := c.Acquire(desc, func() (*Sampler, error) { return dev.CreateSampler(desc) })
//	...
//	if s, last := c.Release(desc); last {
//	    s.Release()
//	}
//
// # Thread Safety
//
// RefCache is safe for concurrent use and must not be copied after creation.
package cache
