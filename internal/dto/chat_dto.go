package dto

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendChatResponse struct {
	Response string `json:"response"`
}

type ChatMessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
}

type SaveChatHistoryRequest struct {
	Messages []ChatMessageDTO `json:"messages"`
}
