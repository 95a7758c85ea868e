package worker

import (
	"github.com/foodiez/directory/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the
// dispatcher. It is a no-op for a nil service.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
