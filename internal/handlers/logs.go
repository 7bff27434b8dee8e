package handlers

import (
	"bufio"
	"compress/gzip"
	"digiroots/internal/logger"
	"digiroots/internal/utils/helpers"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AdminLogsHandler serves the JSON log files written by the logger: the live
// app.log and lumberjack backups named app-<timestamp>.log[.gz].
type AdminLogsHandler struct {
	LogDir    string
	Retention int // days
	now       func() time.Time
}

func NewAdminLogsHandler(logDir string) *AdminLogsHandler {
	return &AdminLogsHandler{LogDir: logDir, Retention: 7, now: time.Now}
}

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ListDays godoc
// @Summary Days with log files
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]interface{} "success, days"
// @Router /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	today := h.now().Local()
	days := make([]string, 0, h.Retention)
	for i := 0; i < h.Retention; i++ {
		d := today.AddDate(0, 0, -i).Format("2006-01-02")
		if files, err := h.filesForDay(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	helpers.JSON(w, http.StatusOK, "", map[string]any{"days": days})
}

// GetLogs godoc
// @Summary Log lines for a day
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param day query string true "YYYY-MM-DD"
// @Param level query string false "Comma separated levels, e.g. warn,error"
// @Param q query string false "Substring filter"
// @Param limit query int false "Default 200, max 1000"
// @Param cursor query int false "Line number to continue from"
// @Success 200 {object} map[string]interface{} "success, day, items, nextCursor"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	day := query.Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "Query parameter day must be YYYY-MM-DD")
		return
	}

	levels := levelSet(query.Get("level"))
	needle := strings.ToLower(strings.TrimSpace(query.Get("q")))
	limit := clampAtoi(query.Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(query.Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := make([]json.RawMessage, 0)

	err := h.forEachLine(day, func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if needle != "" && !strings.Contains(strings.ToLower(string(raw)), needle) {
			return true
		}
		if len(levels) > 0 {
			var entry struct {
				Level string `json:"level"`
			}
			if err := json.Unmarshal(raw, &entry); err != nil || !levels[strings.ToUpper(entry.Level)] {
				return true
			}
		} else if !json.Valid(raw) {
			return true
		}
		items = append(items, append(json.RawMessage(nil), raw...))
		return len(items) < limit
	})
	if err != nil {
		logger.WithCtx(r.Context()).Info("No logs for day", zap.String("day", day), zap.Error(err))
		helpers.Error(w, http.StatusNotFound, "No logs for "+day)
		return
	}

	helpers.JSON(w, http.StatusOK, "", map[string]any{
		"day":        day,
		"items":      items,
		"nextCursor": lineNo,
	})
}

func (h *AdminLogsHandler) filesForDay(day string) ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		return nil, err
	}
	today := h.now().Local().Format("2006-01-02")

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "app.log" && day == today {
			files = append(files, filepath.Join(h.LogDir, name))
			continue
		}
		// lumberjack backup: app-2006-01-02T15-04-05.000.log[.gz]
		if strings.HasPrefix(name, "app-"+day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".log.gz")) {
			files = append(files, filepath.Join(h.LogDir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (h *AdminLogsHandler) forEachLine(day string, handle func([]byte) bool) error {
	files, err := h.filesForDay(day)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return os.ErrNotExist
	}

	for _, path := range files {
		if !readLines(path, handle) {
			break
		}
	}
	return nil
}

// readLines reports false once handle asks to stop.
func readLines(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gz.Close()
		reader = gz
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

func levelSet(csv string) map[string]bool {
	if csv == "" {
		return nil
	}
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func clampAtoi(s string, def, lo, hi int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
