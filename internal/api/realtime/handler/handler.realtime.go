package realtimehdl

import (
	"bufio"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"

	basehdl "github.com/hanguan2025/my-order-admin/internal/api/base/handler"
	realtimesvc "github.com/hanguan2025/my-order-admin/internal/api/realtime/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
)

// RealtimeHandler phục vụ stream SSE cho dashboard
type RealtimeHandler struct {
	Service *realtimesvc.RealtimeService
}

// NewRealtimeHandler tạo handler trên một RealtimeService đã khởi động
func NewRealtimeHandler(service *realtimesvc.RealtimeService) *RealtimeHandler {
	return &RealtimeHandler{Service: service}
}

// writeSSE ghi một sự kiện SSE (event + data JSON) và flush ngay
func writeSSE(w *bufio.Writer, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("event: " + event + "\ndata: " + string(payload) + "\n\n"); err != nil {
		return err
	}
	return w.Flush()
}

// HandleStream mở một stream SSE: gửi snapshot đầy đủ của từng collection
// được yêu cầu, rồi đẩy changelog added/modified/removed và chuông
// order_pending theo thời gian thực.
// GET /realtime/stream?collections=orders,menu,mains,extras
func (h *RealtimeHandler) HandleStream(c fiber.Ctx) error {
	var collections []string
	if raw := c.Query("collections"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				collections = append(collections, name)
			}
		}
	}

	// Snapshot đầu đọc trước khi chiếm kết nối stream
	snapshots := make(map[string][]interface{}, len(collections))
	for _, name := range collections {
		docs, err := h.Service.Snapshot(c.Context(), name)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Collection không hợp lệ: "+name,
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		items := make([]interface{}, len(docs))
		for i, doc := range docs {
			items[i] = doc
		}
		snapshots[name] = items
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	events, cancel := h.Service.Hub.Subscribe(collections)

	c.RequestCtx().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for name, docs := range snapshots {
			if err := writeSSE(w, "snapshot", fiber.Map{
				"collection": name,
				"items":      docs,
			}); err != nil {
				return
			}
		}

		heartbeat := time.NewTicker(15 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := writeSSE(w, event.Type, event); err != nil {
					return
				}
			case <-heartbeat.C:
				// Comment SSE giữ kết nối sống qua proxy
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// HandleStatus trả về trạng thái tầng realtime (số client đang nghe).
// GET /realtime/status
func (h *RealtimeHandler) HandleStatus(c fiber.Ctx) error {
	basehdl.HandleResponse(c, fiber.Map{
		"subscribers": h.Service.Hub.SubscriberCount(),
	}, nil)
	return nil
}
