package dashboard

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"minibot/internal/database"
	"minibot/internal/logger"
	"minibot/internal/types"
)

//go:embed layout.html
var layoutHTML string

// Store источник данных панели
type Store interface {
	GetLatestStatus() (database.Status, error)
	RecentActions(limit int) ([]database.ActionRecord, error)
	RecentRuns(limit int) ([]database.RunRecord, error)
	AddAction(action string) error
}

// PageData данные шаблона страницы
type PageData struct {
	Status    string
	UpdatedAt time.Time
	Actions   []database.ActionRecord
	Runs      []database.RunRecord
	Commands  []string
	Solved    int
	Total     int
}

// Server веб-панель статуса бота
type Server struct {
	store  Store
	tmpl   *template.Template
	logger *logger.LoggerManager
	limit  int
}

var funcs = template.FuncMap{
	"formatDateTime": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Local().Format("02.01.2006 15:04:05")
	},
	"formatDuration": func(d time.Duration) string {
		return fmt.Sprintf("%.1f с", d.Seconds())
	},
	"resultIcon": func(result string) string {
		switch result {
		case "solved":
			return "✅"
		case "aborted":
			return "⏹️"
		case "failed":
			return "❌"
		case "unsupported":
			return "❓"
		}
		return result
	},
}

// NewServer создает новый экземпляр Server; limit число строк в таблицах
func NewServer(store Store, limit int, loggerManager *logger.LoggerManager) (*Server, error) {
	tmpl, err := template.New("layout").Funcs(funcs).Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("template error: %w", err)
	}
	if limit <= 0 {
		limit = 20
	}
	return &Server{store: store, tmpl: tmpl, logger: loggerManager, limit: limit}, nil
}

// Commands кнопки панели: stop и start для каждой мини-игры
func Commands() []string {
	commands := []string{database.Action{Kind: database.ActionStop}.String()}
	for _, m := range append(types.Minigames, types.AllSequence) {
		commands = append(commands, database.Action{Kind: database.ActionStart, Minigame: m}.String())
	}
	return commands
}

// Handler маршруты панели
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/action", s.handleAction)
	return mux
}

func (s *Server) pageData() (PageData, error) {
	data := PageData{Status: "—", Commands: Commands()}

	status, err := s.store.GetLatestStatus()
	switch {
	case err == nil:
		data.Status = status.CurrentStatus
		data.UpdatedAt = status.UpdatedAt
	case !errors.Is(err, sql.ErrNoRows):
		return data, err
	}

	if data.Actions, err = s.store.RecentActions(s.limit); err != nil {
		return data, err
	}
	if data.Runs, err = s.store.RecentRuns(s.limit); err != nil {
		return data, err
	}
	data.Total = len(data.Runs)
	for _, run := range data.Runs {
		if run.Result == "solved" {
			data.Solved++
		}
	}
	return data, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := s.pageData()
	if err != nil {
		s.logger.LogError(err, "Ошибка чтения данных панели")
		http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.LogError(err, "Template execution error")
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	action, err := database.ParseAction(r.FormValue("action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.AddAction(action.String()); err != nil {
		s.logger.LogError(err, "Ошибка добавления действия")
		http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("📨 Действие '%s' добавлено из панели", action)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
