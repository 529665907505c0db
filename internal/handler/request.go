package handler

// GenerateRequest 生成请求
type GenerateRequest struct {
	Q    string `json:"q"`              // URL或关键词
	Role string `json:"role,omitempty"` // agent | loan | profile，默认agent
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}
