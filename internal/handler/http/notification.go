package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workline-hr/hrops-backend/internal/domain/notification"
	"github.com/workline-hr/hrops-backend/internal/handler/http/response"
)

type NotificationHandler interface {
	GetMyNotifications(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(svc notification.Service) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: svc}
}

// GetMyNotifications implements NotificationHandler.
func (n *NotificationHandlerImpl) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		limit = parsed
	}

	notifications, err := n.notificationService.ListForRecipient(r.Context(), employeeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]notificationResponse, 0, len(notifications))
	for _, notif := range notifications {
		responses = append(responses, toNotificationResponse(notif))
	}

	response.Success(w, responses)
}

// MarkRead implements NotificationHandler.
func (n *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Token does not identify an employee")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := n.notificationService.MarkRead(r.Context(), id, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

type notificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt string                 `json:"created_at"`
}

func toNotificationResponse(notif notification.Notification) notificationResponse {
	return notificationResponse{
		ID:        notif.ID,
		Type:      string(notif.Type),
		Title:     notif.Title,
		Message:   notif.Message,
		Data:      notif.Data,
		IsRead:    notif.IsRead,
		CreatedAt: notif.CreatedAt.Format(time.RFC3339),
	}
}
