package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"landing-gen-go/internal/export"
	"landing-gen-go/internal/model"
	"landing-gen-go/internal/render"
	"landing-gen-go/internal/service"
	"landing-gen-go/internal/sse"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 4 << 20

// PageGenerator 生成管线，*service.LandingService 实现它
type PageGenerator interface {
	Generate(ctx context.Context, q, role string, p service.Progress) (*model.GenerationResult, error)
}

// LandingHandler 落地页HTTP处理器
type LandingHandler struct {
	generator PageGenerator
	renderer  *render.Renderer
}

// NewLandingHandler 创建处理器
func NewLandingHandler(gen PageGenerator, renderer *render.Renderer) *LandingHandler {
	return &LandingHandler{generator: gen, renderer: renderer}
}

// Generate 同步生成
// POST /api/generate
// Body: {"q": "xxx", "role": "agent"}
func (h *LandingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Q, req.Role, nil)
	if err != nil {
		zap.L().Warn("generate failed", zap.String("q", req.Q), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GenerateSSE 流式生成，前端据此展示进行中状态
// POST /api/generate/sse
func (h *LandingHandler) GenerateSSE(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// 参数错误在开流之前返回4xx
	if strings.TrimSpace(req.Q) == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	defer writer.StopHeartbeat()

	writer.SetRequest(strings.TrimSpace(req.Q), role)

	result, err := h.generator.Generate(r.Context(), req.Q, req.Role, writer)
	if err != nil {
		zap.L().Warn("generate (sse) failed", zap.String("q", req.Q), zap.Error(err))
		writer.SendGlobalError(err.Error())
		return
	}
	writer.SendResult(result)
}

// Export 下载导出文件
// POST /api/export/{format}  format: json | html | md
// Body: Page
func (h *LandingHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := decodePage(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page body")
		return
	}

	art, err := export.Export(page, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, art.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(art.Body)
}

// Preview 隔离预览
// GET  /api/preview          等待占位
// POST /api/preview  Body: {"page": Page}
func (h *LandingHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var page *model.Page
	if r.Method == http.MethodPost {
		var body struct {
			Page *json.RawMessage `json:"page"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Page != nil && string(*body.Page) != "null" {
			page, _ = pageFromJSON(*body.Page)
		}
	}

	doc, err := h.renderer.Host(page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// Health 健康检查
func (h *LandingHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// decodePage 读取请求体里的Page，按生成时同样的规则补全
func decodePage(w http.ResponseWriter, r *http.Request) (*model.Page, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return pageFromJSON(raw)
}

func pageFromJSON(data []byte) (*model.Page, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return model.ToPage(v), nil
}

// statusFor 错误类型 -> HTTP状态码
func statusFor(err error) int {
	var inErr *service.InputError
	if errors.As(err, &inErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
