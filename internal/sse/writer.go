package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"landing-gen-go/internal/model"
)

// HeartbeatInterval 心跳间隔
var HeartbeatInterval = 15 * time.Second

// Writer SSE写入器
type Writer struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	mu        sync.Mutex
	state     *model.GenerationState
	stopHeart chan struct{}
	heartDone chan struct{}
	stopOnce  sync.Once
}

// NewWriter 创建SSE写入器并启动心跳
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, eris.New("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	writer := &Writer{
		w:         w,
		flusher:   flusher,
		state:     model.NewGenerationState(),
		stopHeart: make(chan struct{}),
		heartDone: make(chan struct{}),
	}

	go writer.heartbeat(HeartbeatInterval)

	return writer, nil
}

// heartbeat 定期发送心跳保持连接
func (s *Writer) heartbeat(interval time.Duration) {
	defer close(s.heartDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			heartbeat := map[string]interface{}{
				"status":         "heartbeat",
				"overall":        s.state.Overall,
				"current_action": s.state.CurrentAction,
			}
			data, _ := json.Marshal(heartbeat)
			fmt.Fprintf(s.w, "data: %s\n\n", data)
			s.flusher.Flush()
			s.mu.Unlock()
		case <-s.stopHeart:
			return
		}
	}
}

// StopHeartbeat 停止心跳并等心跳goroutine退出，之后不会再写ResponseWriter
// 可以重复调用
func (s *Writer) StopHeartbeat() {
	s.stopOnce.Do(func() { close(s.stopHeart) })
	<-s.heartDone
}

func (s *Writer) send() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.w, "data: %s\n\n", data)
	if err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SetRequest 设置查询和角色
func (s *Writer) SetRequest(q string, role model.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = q
	s.state.Role = role
}

// SetAction 更新当前动作和进度并发送
// 进度只增不减
func (s *Writer) SetAction(progress int, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress > s.state.Overall {
		s.state.Overall = progress
	}
	s.state.CurrentAction = action
	return s.send()
}

// SendResult 发送最终结果
func (s *Writer) SendResult(result *model.GenerationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = model.StatusCompleted
	s.state.Overall = 100
	s.state.CurrentAction = "Page generated"
	s.state.Result = result
	if result != nil {
		s.state.Query = result.Q
		s.state.Role = result.Role
	}
	return s.send()
}

// SendGlobalError 发送全局错误
func (s *Writer) SendGlobalError(errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = model.StatusError
	s.state.CurrentAction = "Generation failed"
	s.state.Error = errMsg
	return s.send()
}
