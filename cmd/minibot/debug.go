package main

import (
	"fmt"
	"time"

	"minibot/internal/annotation"
	"minibot/internal/bracing"
	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/screen"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	planMaxDepth   int
	planProfileDir string
	captureDir     string
	captureAnnot   bool
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Отладочные команды без запуска бота",
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <image>",
	Short: "Нарисовать откалиброванную геометрию поверх скриншота",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitConfig()
		if err != nil {
			return err
		}
		out, err := annotation.NewAnnotator(cfg.Geometry, logger.NewWriterLogger(cmd.ErrOrStderr())).AnnotateFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <grid>",
	Short: "Построить план hull bracing для поля вида \"R.RR/_R__/____/BBBB\"",
	Long: `Символы поля: R красный, B синий, . пустая клетка, _ заглушка.
Строки разделяются '/' или переводом строки.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := bracing.ParseGrid(args[0])
		if err != nil {
			return err
		}
		if planProfileDir != "" {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(planProfileDir), profile.Quiet).Stop()
		}

		state := grid.State()
		locked := bracing.LockedCells(state)
		result := bracing.PlanStep(state, planMaxDepth)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, grid.String())
		fmt.Fprintf(out, "score: %d/8, locked: %d, goal: %t\n", bracing.PlacedCount(state), locked.Len(), bracing.GoalAchieved(state))
		fmt.Fprintf(out, "outcome: %s\n", result.Outcome)
		for i, m := range result.Moves {
			fmt.Fprintf(out, "%2d. %s\n", i+1, m)
		}
		return nil
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Считать поле hull bracing с экрана",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitConfig()
		if err != nil {
			return err
		}
		if err := screen.RequireDisplay(); err != nil {
			return err
		}
		layout, err := bracing.LayoutFromCenters(cfg.Geometry.GridCenters)
		if err != nil {
			return err
		}
		grid, err := bracing.NewSampler(screen.NewScreenManager(), layout, cfg.Bracing.SampleRadius).Sample()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), grid.String())
		return nil
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Сохранить скриншот экрана (и его разметку) для калибровки",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitConfig()
		if err != nil {
			return err
		}
		img, err := screen.NewScreenManager().CaptureFullScreen()
		if err != nil {
			return err
		}
		path, err := screen.SavePNG(img, captureDir, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if captureAnnot {
			out, err := annotation.NewAnnotator(cfg.Geometry, logger.NewWriterLogger(cmd.ErrOrStderr())).AnnotateFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().IntVar(&planMaxDepth, "max-depth", bracing.DefaultMaxDepth, "максимальная глубина поиска")
	planCmd.Flags().StringVar(&planProfileDir, "profile", "", "каталог для CPU-профиля планировщика")

	captureCmd.Flags().StringVar(&captureDir, "dir", "screenshots", "каталог для скриншотов")
	captureCmd.Flags().BoolVar(&captureAnnot, "annotate", false, "сразу сохранить разметку скриншота")

	debugCmd.AddCommand(annotateCmd, planCmd, sampleCmd, captureCmd)
}
