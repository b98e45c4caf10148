package arduino

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// Port канал к Arduino; *serial.Port подходит напрямую
type Port interface {
	io.ReadWriter
}

func InitializePort(name string, baud int) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	return port, err
}

func send(port Port, message string) error {
	_, err := port.Write([]byte(message))
	if err != nil {
		return fmt.Errorf("error writing to Arduino: %w", err)
	}
	return nil
}

func SendMoveToArduino(port Port, x, y int) error {
	return send(port, fmt.Sprintf("move:%d,%d\n", x, y))
}

func SendMouseDownToArduino(port Port) error {
	return send(port, "mouse_down\n")
}

func SendMouseUpToArduino(port Port) error {
	return send(port, "mouse_up\n")
}

func SendFastClickToArduino(port Port) error {
	return send(port, "fast_click\n")
}

func WaitForArduinoResponse(port Port, expectedResponse string) (string, error) {
	var response string
	buf := make([]byte, 128)
	for {
		n, err := port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("error reading from Arduino: %w", err)
		}

		response += string(buf[:n])

		if len(response) > 0 && response[len(response)-1] == '\n' {
			// Trim the newline character and any surrounding spaces
			response = string(bytes.TrimSpace([]byte(response)))

			if response == expectedResponse {
				return response, nil
			}
			return "", fmt.Errorf("unexpected response: '%s'", response)
		}
	}
}
