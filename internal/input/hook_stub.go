//go:build !windows

package input

type hookState struct{}

// Start reports that global keyboard hooks are unavailable.
func (i *Interceptor) Start() error {
	return ErrUnsupported
}

// Stop is a no-op.
func (i *Interceptor) Stop() error {
	return nil
}
