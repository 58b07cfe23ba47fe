package cache

// Keyer generates cache keys for the remote-service clients.
type Keyer interface {
	// ValidationKey keys a validation-service response by diagram text.
	ValidationKey(code string) string

	// ShareKey keys a render/share-service response by diagram text and view.
	ShareKey(code, view string) string
}

// DefaultKeyer hashes diagram text into fixed-width keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ValidationKey generates a key for validation responses.
func (k *DefaultKeyer) ValidationKey(code string) string {
	return hashKey("validate", code)
}

// ShareKey generates a key for share responses.
func (k *DefaultKeyer) ShareKey(code, view string) string {
	return hashKey("share", code, view)
}

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or users
// can share one backend without key collisions.
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ValidationKey generates a prefixed key for validation responses.
func (k *ScopedKeyer) ValidationKey(code string) string {
	return k.prefix + k.inner.ValidationKey(code)
}

// ShareKey generates a prefixed key for share responses.
func (k *ScopedKeyer) ShareKey(code, view string) string {
	return k.prefix + k.inner.ShareKey(code, view)
}
