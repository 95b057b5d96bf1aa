//go:build !windows

package autostart

func current() (string, bool) { return "", false }

func write(string) error { return ErrUnsupported }

func remove() error { return ErrUnsupported }
