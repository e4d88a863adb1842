package errors

var (
	// Domain errors — used in storage/handlers
	ErrUserNotFound     = NotFound("user not found")
	ErrProductNotFound  = NotFound("product not found")
	ErrEmailTaken       = AlreadyExists("an account with this email already exists")
	ErrBadCredentials   = Unauthorized("invalid email or password")
	ErrSellerUnverified = Forbidden("Aadhar verification required to sell products")
	ErrNotParticipant   = Forbidden("you are not a participant of this conversation")
	ErrInvalidAadhar    = InvalidArg("Aadhar number must be exactly 12 digits")
	ErrInvalidPrice     = InvalidArg("price must be a non-negative number")
	ErrInvalidCondition = InvalidArg("condition must be one of: brand-new, like-new, good, fair, poor")
	ErrMissingTitle     = InvalidArg("title cannot be empty")
	ErrMissingReceiver  = InvalidArg("receiverId must name another user")
	ErrEmptyMessage     = InvalidArg("message cannot be empty")
	ErrExpiredSignature = Forbidden("signed URL is expired or invalid")
)

func ErrStoreFailure(cause error) error {
	return Wrap(CodeInternal, "storage operation failed", cause)
}
