package tasks_digest

import (
	"tasktracker/internal/mail"
	"tasktracker/internal/util/logger"
)

var digestRepository = &DigestRepository{}

var digestService = &DigestService{
	digestRepository: digestRepository,
	logger:           logger.GetLogger(),
}

func GetDigestService() *DigestService {
	return digestService
}

// SetupDependencies wires the mailer. Called once from main after config
// is loaded.
func SetupDependencies() {
	digestService.mailer = mail.GetMailer()
}
