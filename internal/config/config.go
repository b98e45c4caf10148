package config

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"minibot/internal/types"

	"github.com/spf13/viper"
)

// Структура для координат с размером
type CoordinatesWithSize struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Rect возвращает область в виде image.Rectangle
func (c CoordinatesWithSize) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)
}

// Range диапазон значений в секундах (или пикселях в секунду для скорости)
type Range struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// Durations возвращает границы диапазона как time.Duration
func (r Range) Durations() (time.Duration, time.Duration) {
	return Seconds(r.Min), Seconds(r.Max)
}

// Seconds переводит секунды из конфига в time.Duration
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Кнопки мини-игр внизу окна
type Buttons struct {
	Scrubbing image.Point `mapstructure:"scrubbing"`
	Sawing    image.Point `mapstructure:"sawing"`
	Bracing   image.Point `mapstructure:"bracing"`
	Hammering image.Point `mapstructure:"hammering"`
	Patching  image.Point `mapstructure:"patching"`
}

// Области зелёных галочек завершения
type GreenChecks struct {
	Scrubbing CoordinatesWithSize `mapstructure:"scrubbing"`
	Sawing    CoordinatesWithSize `mapstructure:"sawing"`
	Bracing   CoordinatesWithSize `mapstructure:"bracing"`
	Hammering CoordinatesWithSize `mapstructure:"hammering"`
	Patching  CoordinatesWithSize `mapstructure:"patching"`
}

// Geometry фиксированные координаты экрана (1920x1080)
type Geometry struct {
	BoxOffset   image.Point     `mapstructure:"box_offset"`
	BoxSize     image.Point     `mapstructure:"box_size"`
	Buttons     Buttons         `mapstructure:"buttons"`
	GreenChecks GreenChecks     `mapstructure:"green_checks"`
	GridCenters [][]image.Point `mapstructure:"grid_centers"`
}

// Button возвращает координаты кнопки мини-игры
func (g Geometry) Button(m types.Minigame) (image.Point, bool) {
	switch m {
	case types.Scrubbing:
		return g.Buttons.Scrubbing, true
	case types.Sawing:
		return g.Buttons.Sawing, true
	case types.Bracing:
		return g.Buttons.Bracing, true
	case types.Hammering:
		return g.Buttons.Hammering, true
	case types.Patching:
		return g.Buttons.Patching, true
	}
	return image.Point{}, false
}

// GreenCheck возвращает область галочки завершения мини-игры
func (g Geometry) GreenCheck(m types.Minigame) (CoordinatesWithSize, bool) {
	switch m {
	case types.Scrubbing:
		return g.GreenChecks.Scrubbing, true
	case types.Sawing:
		return g.GreenChecks.Sawing, true
	case types.Bracing:
		return g.GreenChecks.Bracing, true
	case types.Hammering:
		return g.GreenChecks.Hammering, true
	case types.Patching:
		return g.GreenChecks.Patching, true
	}
	return CoordinatesWithSize{}, false
}

// BoxCenter центр окна мини-игры
func (g Geometry) BoxCenter() image.Point {
	return image.Point{X: g.BoxOffset.X + g.BoxSize.X/2, Y: g.BoxOffset.Y + g.BoxSize.Y/2}
}

// Тайминги движения мыши и пауз
type Timing struct {
	DragSpeed                Range   `mapstructure:"drag_speed_px_per_sec"`
	DragMinDuration          float64 `mapstructure:"drag_min_duration"`
	DragMaxDuration          float64 `mapstructure:"drag_max_duration"`
	PrePressSettle           Range   `mapstructure:"pre_press_settle"`
	PostReleaseReaction      Range   `mapstructure:"post_release_reaction"`
	BreathEveryNMoves        int     `mapstructure:"breath_every_n_moves"`
	BreathSleep              Range   `mapstructure:"breath_sleep"`
	ClickSettle              float64 `mapstructure:"click_settle"`
	TweenStep                float64 `mapstructure:"tween_step"`
	MenuLoadDelay            float64 `mapstructure:"menu_load_delay"`
	BetweenMinigamesDelay    float64 `mapstructure:"between_minigames_delay"`
	SequenceRepeatCountdownS int     `mapstructure:"sequence_repeat_countdown"`
}

// Настройки решателя hull bracing
type Bracing struct {
	MaxDepth       int     `mapstructure:"max_depth"`
	SampleRadius   int     `mapstructure:"sample_radius"`
	ConfirmFrames  int     `mapstructure:"confirm_frames"`
	ConfirmSpacing float64 `mapstructure:"confirm_spacing"`
}

// Настройки hull patching
type Patching struct {
	HSVLow           [3]int  `mapstructure:"hsv_low"`
	HSVHigh          [3]int  `mapstructure:"hsv_high"`
	MinArea          int     `mapstructure:"min_area"`
	ReclickCooldown  float64 `mapstructure:"reclick_cooldown"`
	ReclickTolerance int     `mapstructure:"reclick_tolerance"`
	MinClickInterval float64 `mapstructure:"min_click_interval"`
	IdleDelay        float64 `mapstructure:"idle_delay"`
	ConfirmFrames    int     `mapstructure:"confirm_frames"`
	ConfirmSpacing   float64 `mapstructure:"confirm_spacing"`
}

// Настройки hull hammering
type Hammering struct {
	ScanY           int     `mapstructure:"scan_y"`
	NailRGB         [3]int  `mapstructure:"nail_rgb"`
	NailTolerance   float64 `mapstructure:"nail_tolerance"`
	GroupDistance   int     `mapstructure:"group_distance"`
	FlushY          int     `mapstructure:"flush_y"`
	TrackRange      int     `mapstructure:"track_range"`
	StripWidth      int     `mapstructure:"strip_width"`
	SpriteOffset    int     `mapstructure:"sprite_offset"`
	SpriteRGB       [3]int  `mapstructure:"sprite_rgb"`
	SpriteTolerance float64 `mapstructure:"sprite_tolerance"`
	SpriteMaxFrames int     `mapstructure:"sprite_max_frames"`
	FrameDelay      float64 `mapstructure:"frame_delay"`
	NailDelay       float64 `mapstructure:"nail_delay"`
	SettleDelay     float64 `mapstructure:"settle_delay"`
	MaxAttempts     int     `mapstructure:"max_attempts"`
	ConfirmFrames   int     `mapstructure:"confirm_frames"`
	ConfirmSpacing  float64 `mapstructure:"confirm_spacing"`
}

// Настройки hull scrubbing
type Scrubbing struct {
	BoardTopLeft     image.Point `mapstructure:"board_top_left"`
	BoardBottomRight image.Point `mapstructure:"board_bottom_right"`
	CleanReference   string      `mapstructure:"clean_reference"`
	DiffThreshold    int         `mapstructure:"diff_threshold"`
	MinDirtyArea     int         `mapstructure:"min_dirty_area"`
	Rows             int         `mapstructure:"rows"`
	SegmentMargin    int         `mapstructure:"segment_margin"`
	MergeDistance    int         `mapstructure:"merge_distance"`
	PowerRecharge    float64     `mapstructure:"power_recharge"`
	PowerDelay       float64     `mapstructure:"power_delay"`
	SegmentDelay     float64     `mapstructure:"segment_delay"`
	PassDelay        float64     `mapstructure:"pass_delay"`
	MaxAttempts      int         `mapstructure:"max_attempts"`
	ConfirmFrames    int         `mapstructure:"confirm_frames"`
	ConfirmSpacing   float64     `mapstructure:"confirm_spacing"`
}

// Настройки plank sawing
type Sawing struct {
	BoardTopLeft     image.Point            `mapstructure:"board_top_left"`
	BoardBottomRight image.Point            `mapstructure:"board_bottom_right"`
	Templates        map[string]string      `mapstructure:"templates"`
	Spawns           map[string]image.Point `mapstructure:"spawns"`
	MatchThreshold   float64                `mapstructure:"match_threshold"`
	ClampMargin      int                    `mapstructure:"clamp_margin"`
	SegmentLength    float64                `mapstructure:"segment_length"`
	Wobble           float64                `mapstructure:"wobble"`
	AfterCutDelay    float64                `mapstructure:"after_cut_delay"`
	NextBoardDelay   float64                `mapstructure:"next_board_delay"`
	RetryDelay       float64                `mapstructure:"retry_delay"`
	ExpectedBoards   int                    `mapstructure:"expected_boards"`
	MaxAttempts      int                    `mapstructure:"max_attempts"`
}

// Rect область доски
func (s Sawing) Rect() image.Rectangle {
	return image.Rectangle{Min: s.BoardTopLeft, Max: s.BoardBottomRight}.Canon()
}

// Rect область доски
func (s Scrubbing) Rect() image.Rectangle {
	return image.Rectangle{Min: s.BoardTopLeft, Max: s.BoardBottomRight}.Canon()
}

// Основная структура конфигурации
type Config struct {
	Actuator       string   `mapstructure:"actuator"`
	Port           string   `mapstructure:"port"`
	BaudRate       int      `mapstructure:"baud_rate"`
	LogFilePath    string   `mapstructure:"log_file_path"`
	SaveToDB       int      `mapstructure:"save_to_db"`
	DatabaseDriver string   `mapstructure:"database_driver"`
	DatabaseDSN    string   `mapstructure:"database_dsn"`
	ActionPollS    float64  `mapstructure:"action_poll_interval"`
	MetricsAddr    string   `mapstructure:"metrics_addr"`
	SequenceOrder  []string `mapstructure:"sequence_order"`
	Geometry       Geometry `mapstructure:"geometry"`
	Timing         Timing   `mapstructure:"timing"`
	Bracing        Bracing  `mapstructure:"bracing"`
	Patching       Patching  `mapstructure:"patching"`
	Hammering      Hammering `mapstructure:"hammering"`
	Scrubbing      Scrubbing `mapstructure:"scrubbing"`
	Sawing         Sawing    `mapstructure:"sawing"`
}

func greenCheckNear(button image.Point) CoordinatesWithSize {
	return CoordinatesWithSize{X: button.X - 50 - 15, Y: button.Y - 15, Width: 30, Height: 30}
}

// Default конфигурация с откалиброванными значениями для экрана 1920x1080
func Default() Config {
	buttons := Buttons{
		Scrubbing: image.Point{X: 630, Y: 910},
		Sawing:    image.Point{X: 795, Y: 910},
		Bracing:   image.Point{X: 955, Y: 910},
		Hammering: image.Point{X: 1120, Y: 910},
		Patching:  image.Point{X: 1285, Y: 910},
	}

	rowsY := []int{415, 490, 565, 640}
	colsX := []int{850, 920, 995, 1075}
	centers := make([][]image.Point, len(rowsY))
	for r, y := range rowsY {
		centers[r] = make([]image.Point, len(colsX))
		for c, x := range colsX {
			centers[r][c] = image.Point{X: x, Y: y}
		}
	}

	return Config{
		Actuator:       "robotgo",
		Port:           "COM3",
		BaudRate:       9600,
		LogFilePath:    "logs/minibot.log",
		SaveToDB:       0,
		DatabaseDriver: "mysql",
		DatabaseDSN:    "root:root@tcp(127.0.0.1:3306)/minibot?parseTime=true",
		ActionPollS:    1.0,
		SequenceOrder:  []string{"scrubbing", "sawing", "bracing", "hammering", "patching"},
		Geometry: Geometry{
			BoxOffset: image.Point{X: 493, Y: 170},
			BoxSize:   image.Point{X: 935, Y: 740},
			Buttons:   buttons,
			GreenChecks: GreenChecks{
				Scrubbing: greenCheckNear(buttons.Scrubbing),
				Sawing:    greenCheckNear(buttons.Sawing),
				Bracing:   greenCheckNear(buttons.Bracing),
				Hammering: greenCheckNear(buttons.Hammering),
				Patching:  greenCheckNear(buttons.Patching),
			},
			GridCenters: centers,
		},
		Timing: Timing{
			DragSpeed:                Range{Min: 8000, Max: 12000},
			DragMinDuration:          0.05,
			DragMaxDuration:          0.22,
			PrePressSettle:           Range{Min: 0.004, Max: 0.008},
			PostReleaseReaction:      Range{Min: 0.025, Max: 0.045},
			BreathEveryNMoves:        18,
			BreathSleep:              Range{Min: 0.08, Max: 0.14},
			ClickSettle:              0.06,
			TweenStep:                0.008,
			MenuLoadDelay:            2.0,
			BetweenMinigamesDelay:    1.0,
			SequenceRepeatCountdownS: 10,
		},
		Bracing: Bracing{
			MaxDepth:       12,
			SampleRadius:   5,
			ConfirmFrames:  2,
			ConfirmSpacing: 0.10,
		},
		Patching: Patching{
			HSVLow:           [3]int{90, 40, 70},
			HSVHigh:          [3]int{120, 255, 255},
			MinArea:          280,
			ReclickCooldown:  0.75,
			ReclickTolerance: 32,
			MinClickInterval: 0.11,
			IdleDelay:        0.02,
			ConfirmFrames:    2,
			ConfirmSpacing:   0.10,
		},
		Hammering: Hammering{
			ScanY:           480,
			NailRGB:         [3]int{110, 110, 110},
			NailTolerance:   15,
			GroupDistance:   25,
			FlushY:          560,
			TrackRange:      100,
			StripWidth:      15,
			SpriteOffset:    20,
			SpriteRGB:       [3]int{254, 245, 170},
			SpriteTolerance: 30,
			SpriteMaxFrames: 300,
			FrameDelay:      1.0 / 60,
			NailDelay:       0.1,
			SettleDelay:     0.5,
			MaxAttempts:     20,
			ConfirmFrames:   2,
			ConfirmSpacing:  0.10,
		},
		Scrubbing: Scrubbing{
			BoardTopLeft:     image.Point{X: 575, Y: 315},
			BoardBottomRight: image.Point{X: 1215, Y: 760},
			CleanReference:   "assets/scrub-board-clean.png",
			DiffThreshold:    30,
			MinDirtyArea:     50,
			Rows:             10,
			SegmentMargin:    20,
			MergeDistance:    30,
			PowerRecharge:    1.0,
			PowerDelay:       0.6,
			SegmentDelay:     0.05,
			PassDelay:        0.3,
			MaxAttempts:      50,
			ConfirmFrames:    2,
			ConfirmSpacing:   0.10,
		},
		Sawing: Sawing{
			BoardTopLeft:     image.Point{X: 645, Y: 440},
			BoardBottomRight: image.Point{X: 1280, Y: 715},
			Templates: map[string]string{
				"l":          "assets/board-L.png",
				"diagonal":   "assets/board-diagonal.png",
				"horizontal": "assets/board-horizontal.png",
				"vertical":   "assets/board-vertical.png",
				"zigzag":     "assets/board-zigzag.png",
			},
			Spawns: map[string]image.Point{
				"diagonal":   {X: 950, Y: 385},
				"horizontal": {X: 510, Y: 570},
				"l":          {X: 875, Y: 385},
				"vertical":   {X: 875, Y: 385},
				"zigzag":     {X: 690, Y: 755},
			},
			MatchThreshold: 0.6,
			ClampMargin:    2,
			SegmentLength:  200,
			Wobble:         1.2,
			AfterCutDelay:  0.35,
			NextBoardDelay: 0.5,
			RetryDelay:     0.25,
			ExpectedBoards: 4,
			MaxAttempts:    7,
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if len(c.Geometry.GridCenters) != 4 {
		return fmt.Errorf("geometry.grid_centers: ожидается 4 строки, получено %d", len(c.Geometry.GridCenters))
	}
	for r, row := range c.Geometry.GridCenters {
		if len(row) != 4 {
			return fmt.Errorf("geometry.grid_centers[%d]: ожидается 4 точки, получено %d", r, len(row))
		}
	}
	if c.DatabaseDriver != "mysql" && c.DatabaseDriver != "sqlite" {
		return fmt.Errorf("database_driver: неизвестное значение %q (mysql или sqlite)", c.DatabaseDriver)
	}
	if c.Actuator != "robotgo" && c.Actuator != "arduino" {
		return fmt.Errorf("actuator: неизвестное значение %q (robotgo или arduino)", c.Actuator)
	}
	if c.Timing.DragMinDuration > c.Timing.DragMaxDuration {
		return fmt.Errorf("timing: drag_min_duration больше drag_max_duration")
	}
	if c.Bracing.MaxDepth <= 0 {
		return fmt.Errorf("bracing.max_depth должен быть положительным")
	}
	if c.Scrubbing.Rows < 3 {
		return fmt.Errorf("scrubbing.rows: нужно минимум 3 полосы")
	}
	if c.Sawing.Rect().Empty() || c.Scrubbing.Rect().Empty() {
		return fmt.Errorf("sawing/scrubbing: пустая область доски")
	}
	for name := range c.Sawing.Templates {
		if _, ok := c.Sawing.Spawns[name]; !ok {
			return fmt.Errorf("sawing.spawns: нет точки пилы для доски %q", name)
		}
	}
	for _, name := range c.SequenceOrder {
		if _, err := types.ParseMinigame(name); err != nil {
			return fmt.Errorf("sequence_order: %w", err)
		}
	}
	return nil
}

// Load читает конфигурацию через viper поверх значений по умолчанию
func Load(v *viper.Viper) (Config, error) {
	config := Default()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("не удалось разобрать конфигурацию: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

var InitConfig = func() (Config, error) {
	// Инициализация viper для чтения конфигурации из .yaml файла
	v := viper.New()
	v.SetConfigName("config") // Имя конфигурационного файла без расширения
	v.AddConfigPath(".")      // Путь к файлу конфигурации
	v.SetConfigType("yaml")   // Формат файла
	v.SetEnvPrefix("MINIBOT")
	v.AutomaticEnv()

	return Load(v)
}
