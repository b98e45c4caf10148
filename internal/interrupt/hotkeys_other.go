//go:build !windows

package interrupt

func (im *InterruptManager) monitorHotkeys() error {
	return ErrHotkeysUnsupported
}
