package biz

import "time"

type CtxKey string

const (
	USER_KEY CtxKey = "user_id"

	TokenExpire        = time.Hour * 2
	TokenRenewalExpire = time.Hour * 24 * 7

	REFRESHTOKEN = "refresh_token"
	ACCESSTOKEN  = "access_token"
)

const (
	USER_LOGIN_BLOOM     = "stylistai:bloom:usernames"
	USER_LOGIN_BLOOM_BIT = 1 << 20
)

// Conversation dialogue statuses persisted on the conversations table.
const (
	ConvStatusAwaitingInput = "AWAITING_INPUT"
	ConvStatusReady         = "READY_TO_GENERATE"
	ConvStatusCompleted     = "COMPLETED"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
