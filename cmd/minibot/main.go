// minibot автоматизирует мини-игры ремонта корабля.
//
// Использование:
//
//	minibot                          - интерактивный бот (горячие клавиши 1-5, F1, F11)
//	minibot debug annotate <image>   - разметка скриншота откалиброванной геометрией
//	minibot debug plan <grid>        - план hull bracing для текстового поля
//	minibot debug sample             - считать поле hull bracing с экрана
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minibot",
	Short: "Бот для мини-игр ремонта корабля",
	Long: `minibot решает мини-игры hull bracing и hull patching, управляя мышью
через robotgo или Arduino HID.

Горячие клавиши:
  1 scrubbing, 2 sawing, 3 bracing, 4 hammering, 5 patching
  F1 все мини-игры по кругу, F11 стоп

Примеры:
  minibot
  minibot debug annotate screenshot.png
  minibot debug plan "R_RR/____/___B/BBB."`,
	SilenceUsage: true,
	RunE:         runBot,
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
