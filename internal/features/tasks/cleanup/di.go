package tasks_cleanup

import (
	"tasktracker/internal/objectstore"
	cache_utils "tasktracker/internal/util/cache"
	"tasktracker/internal/util/logger"
)

var cleanupService = &AttachmentCleanupService{}

func GetAttachmentCleanupService() *AttachmentCleanupService {
	return cleanupService
}

// SetupDependencies wires the queue and object store. Called once from
// main after config is loaded.
func SetupDependencies() {
	cleanupService.queueService = cache_utils.NewValkeyQueueService()
	cleanupService.store = objectstore.GetStore()
	cleanupService.logger = logger.GetLogger()
}
