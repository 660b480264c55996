package email

const (
	subjectTestDriveNotification = "New Test Drive Request"
	subjectTestDriveConfirmation = "Your Test Drive Request is Confirmed 🚗⚡"
)
