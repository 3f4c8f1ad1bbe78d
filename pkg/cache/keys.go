package cache

import (
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
)

// keyVersion changes whenever the meaning of a cached entry changes.
const keyVersion = "v1"

// Keyer derives cache keys.
type Keyer interface {
	// ClaimKey identifies a proof of c, lemmas included.
	ClaimKey(c *prover.Claim) string

	// SweepKey identifies a companion check and its parameters.
	SweepKey(name string, params ...any) string
}

// DefaultKeyer hashes the canonical encoding of its input.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ClaimKey(c *prover.Claim) string {
	return hashKey("claim:"+c.Name, keyVersion, claims.Canonical(c))
}

func (DefaultKeyer) SweepKey(name string, params ...any) string {
	return hashKey("sweep:"+name, keyVersion, params)
}

// ScopedKeyer prefixes every key of an inner keyer, so that several
// deployments can share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix. A nil inner keyer
// means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ClaimKey(c *prover.Claim) string {
	return k.prefix + k.inner.ClaimKey(c)
}

func (k *ScopedKeyer) SweepKey(name string, params ...any) string {
	return k.prefix + k.inner.SweepKey(name, params...)
}
