package arduino

import (
	"fmt"
)

// ProcessAndWait отправляет команду и ждёт подтверждения от Arduino
func ProcessAndWait(
	sendToArduino func(Port) error,
	waitForArduinoResponse func(Port, string) (string, error),
	port Port) error {

	if err := sendToArduino(port); err != nil {
		return err
	}

	// Ожидаем ответа от Arduino
	_, err := waitForArduinoResponse(port, "received")
	if err != nil {
		return fmt.Errorf("error waiting for Arduino response: %w", err)
	}

	return nil
}
