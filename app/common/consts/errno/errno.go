package errno

const (
	StatusOK            = 10000
	StatusTokenFreshed  = 10001
	StatusAwaitingInput = 10002
)

const (
	TokenEmpty = 40000 + iota
	AccessTokenExpired
	RefreshTokenExpired
)

const (
	InternalError = 50000 + iota
	InvalidParam
	UserAlreadyExists
	UserNotFound
	InvalidCredentials
	ConversationNotFound
	ConversationForbidden
	MessageNotFound
	OutfitNotFound
)

const (
	GuardrailRejected = 60000 + iota
	PlannerUnavailable
	NoCandidatesFound
	AssemblyEmpty
	NoValidOutfits
)
