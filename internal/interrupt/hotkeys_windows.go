//go:build windows

package interrupt

import (
	"fmt"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"
)

// monitorHotkeys устанавливает глобальный хук клавиатуры и обрабатывает события в горутине
func (im *InterruptManager) monitorHotkeys() error {
	eventChan := make(chan types.KeyboardEvent, 100)
	if err := keyboard.Install(nil, eventChan); err != nil {
		return fmt.Errorf("не удалось установить хук клавиатуры: %w", err)
	}

	go func() {
		defer keyboard.Uninstall()
		for event := range eventChan {
			if event.Message == types.WM_KEYDOWN {
				im.HandleKeyDown(uint32(event.VKCode))
			}
		}
	}()
	return nil
}
