package constants

// NATS Subjects
const (
	// Mailer collaborator: OTP delivery emails
	SubjectEmailOTP = "notify.email.otp"
)
