package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entries theo module (ví dụ: order, stats, realtime)
// và theo log type (trace..fatal). Entry bị loại không bị drop ở đây mà
// chỉ được đánh dấu bằng field "_filtered"; AsyncHook sẽ bỏ qua khi ghi.
type FilterHook struct {
	// map[string]bool để lookup nhanh; rỗng hoặc chứa "*" = cho phép tất cả
	allowedModules  map[string]bool
	allowedLogTypes map[string]bool

	hasModuleFilter  bool
	hasLogTypeFilter bool

	mu sync.RWMutex
}

// NewFilterHook tạo một filter hook mới từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{
		allowedModules:  make(map[string]bool),
		allowedLogTypes: make(map[string]bool),
	}

	hook.updateFilters(cfg)

	return hook
}

// updateFilters cập nhật filters từ config
func (h *FilterHook) updateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedModules = parseFilter(cfg.FilterModules)
	h.hasModuleFilter = len(h.allowedModules) > 0 && !h.allowedModules["*"]

	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
	h.hasLogTypeFilter = len(h.allowedLogTypes) > 0 && !h.allowedLogTypes["*"]
}

// parseFilter parse filter string dạng "value1,value2" thành map.
// "*" hoặc rỗng nghĩa là cho phép tất cả.
func parseFilter(filterStr string) map[string]bool {
	result := make(map[string]bool)

	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		result["*"] = true
		return result
	}

	for _, part := range strings.Split(filterStr, ",") {
		value := strings.ToLower(strings.TrimSpace(part))
		if value != "" {
			result[value] = true
		}
	}

	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry không khớp filter bằng field "_filtered"
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.hasLogTypeFilter {
		if !h.allowedLogTypes[entry.Level.String()] {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	if h.hasModuleFilter {
		module, ok := entry.Data["module"].(string)
		if !ok || !h.allowedModules[strings.ToLower(module)] {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	return nil
}
