package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diycomponents/storefront/internal/api/visitor"
)

// NotificationHandler streams the visitor's transient notices over
// server-sent events.
type NotificationHandler struct {
	visitors *visitor.Registry
}

func NewNotificationHandler(visitors *visitor.Registry) *NotificationHandler {
	return &NotificationHandler{visitors: visitors}
}

// Stream holds the connection open and forwards notices as SSE data
// events until the client disconnects.
//
// @Summary      Notification stream
// @Tags         notifications
// @Produce      text/event-stream
// @Router       /notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	cont := container(c, h.visitors)
	sub := cont.Notices.Subscribe(c.Request().Context())

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	for notice := range sub.C() {
		data, err := json.Marshal(notice)
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
			return nil
		}
		resp.Flush()
	}
	return nil
}
