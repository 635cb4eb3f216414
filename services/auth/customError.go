package auth

// Client-facing messages.
const (
	msgMissingFields     = "Please provide all fields"
	msgMissingCode       = "Please provide email and verification code"
	msgEmailRequired     = "Email is required"
	msgEmailTaken        = "This email already exists"
	msgDeviceTaken       = "This deviceId already exists"
	msgAlreadyRegistered = "User already registered with this email"
	msgNoCode            = "No verification code found for this email"
	msgNoPending         = "No pending verification for this email"
	msgCodeExpired       = "Verification code expired"
	msgInvalidCode       = "Invalid verification code"
	msgNotRegistered     = "User is not registered"
	msgWrongPassword     = "Password is incorrect"
	msgUserNotFound      = "User with this email not found"
	msgSendFailed        = "failed to send verification email"
	msgInternal          = "Internal Server error"
)
