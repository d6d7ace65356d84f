// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Gender   string `json:"gender,optional"`
}

type RegisterResponse struct {
	StatusCode int          `json:"code"`
	StatusMsg  string       `json:"msg"`
	User       *UserProfile `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	StatusCode   int          `json:"code"`
	StatusMsg    string       `json:"msg"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *UserProfile `json:"user"`
}

type UserProfile struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	Gender   string `json:"gender"`
}

type ConverseRequest struct {
	ConversationId int64  `json:"conversation_id,optional"`
	Query          string `json:"query"`
	// OutfitIndex narrows a refinement turn to one previously shown option (1-based).
	OutfitIndex int64 `json:"outfit_index,optional"`
}

type ConverseResponse struct {
	StatusCode        int          `json:"code"`
	StatusMsg         string       `json:"msg"`
	ConversationId    int64        `json:"conversation_id"`
	Status            string       `json:"status"`
	Message           string       `json:"message"`
	ConversationTitle string       `json:"conversation_title,omitempty"`
	Outfits           []OutfitView `json:"outfits,omitempty"`
}

type OutfitView struct {
	OptionIndex     int64      `json:"option_index"`
	Outfit          []ItemView `json:"outfit"`
	Cost            float64    `json:"cost"`
	RemainingBudget *float64   `json:"remaining_budget"`
	Message         string     `json:"message"`
}

type ItemView struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Url        string  `json:"url"`
	ImageLink  string  `json:"image_link"`
	Brand      string  `json:"brand"`
	Material   string  `json:"material"`
	Price      float64 `json:"price"`
	Similarity float64 `json:"similarity"`
}

type ExplainRequest struct {
	MessageId   int64  `json:"message_id"`
	OptionIndex int64  `json:"option_index,optional"`
	Query       string `json:"query"`
}

type ExplainResponse struct {
	StatusCode  int    `json:"code"`
	StatusMsg   string `json:"msg"`
	Explanation string `json:"explanation"`
}

type ListConversationsRequest struct {
	Offset int64 `form:"offset,optional"`
	Limit  int64 `form:"limit,optional"`
}

type ListConversationsResponse struct {
	StatusCode    int                `json:"code"`
	StatusMsg     string             `json:"msg"`
	Conversations []ConversationView `json:"conversations"`
}

type ConversationView struct {
	ConversationId int64  `json:"conversation_id"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	UpdatedAt      int64  `json:"updated_at"`
}

type GetConversationRequest struct {
	ConversationId int64 `path:"id"`
}

type GetConversationResponse struct {
	StatusCode   int              `json:"code"`
	StatusMsg    string           `json:"msg"`
	Conversation ConversationView `json:"conversation"`
	Messages     []MessageView    `json:"messages"`
}

type MessageView struct {
	MessageId int64        `json:"message_id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	Outfits   []OutfitView `json:"outfits,omitempty"`
	CreatedAt int64        `json:"created_at"`
}

type DeleteConversationRequest struct {
	ConversationId int64 `path:"id"`
}

type DeleteConversationResponse struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
}

type SyncGarmentsRequest struct {
	Garments []GarmentPayload `json:"garments"`
}

type GarmentPayload struct {
	Id           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,optional"`
	Url          string  `json:"url,optional"`
	ImageLink    string  `json:"image_link,optional"`
	Brand        string  `json:"brand,optional"`
	Material     string  `json:"material,optional"`
	Color        string  `json:"color,optional"`
	Gender       string  `json:"gender"`
	MainCategory string  `json:"main_category"`
	Price        float64 `json:"price"`
	UpdatedAt    int64   `json:"updated_at,optional"`
}

type SyncGarmentsResponse struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
	Accepted   int    `json:"accepted"`
}

type HealthResponse struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
	Mysql      string `json:"mysql"`
}
