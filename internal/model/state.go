package model

// 生成状态
const (
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// GenerationState 生成过程状态 - SSE每次输出这个完整结构
type GenerationState struct {
	Status        string            `json:"status"`           // "generating" | "completed" | "error"
	Query         string            `json:"q,omitempty"`      // 用户查询
	Role          Role              `json:"role,omitempty"`   // 角色
	Overall       int               `json:"overall"`          // 整体进度 0-100
	CurrentAction string            `json:"current_action"`   // 当前在做什么
	Result        *GenerationResult `json:"result,omitempty"` // 完成后的结果
	Error         string            `json:"error,omitempty"`  // 全局错误
}

// NewGenerationState 创建初始状态
func NewGenerationState() *GenerationState {
	return &GenerationState{
		Status:        StatusGenerating,
		Overall:       0,
		CurrentAction: "Initializing...",
	}
}
