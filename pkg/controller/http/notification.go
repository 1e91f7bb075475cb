package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nyaya-lab/nyayasetu/pkg/domain/types"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/errutil"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	items, err := s.uc.Notification.List(ctx, uid, queryBool(r, "unread_only"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toNotificationResponses(items))
}

func (s *Server) countUnread(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	count, err := s.uc.Notification.CountUnread(ctx, uid)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]int{"unread_count": count})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	notificationID := types.NotificationID(chi.URLParam(r, "notificationID"))

	if err := s.uc.Notification.MarkRead(ctx, uid, notificationID); err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, err := userID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Notification.MarkAllRead(ctx, uid); err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
