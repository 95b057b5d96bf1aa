//go:build !windows

package input

func sendInput([]keyStroke) error {
	return ErrUnsupported
}
