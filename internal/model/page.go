package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Role 落地页角色
type Role string

const (
	RoleAgent   Role = "agent"
	RoleLoan    Role = "loan"
	RoleProfile Role = "profile"
)

// AllRoles 所有支持的角色
var AllRoles = []Role{RoleAgent, RoleLoan, RoleProfile}

// ParseRole 解析角色，空字符串默认agent
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleAgent, nil
	}
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", eris.Errorf("unknown role %q (expected agent, loan or profile)", s)
}

const (
	// DefaultTitle 缺省标题
	DefaultTitle = "Generated Page"
	// PlaceholderHTML 缺省页面片段
	PlaceholderHTML = "<main><h1>Generated Page</h1></main>"
)

// Meta 页面元信息
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Section 页面分区，顺序即渲染顺序
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Page 最终输出的落地页
type Page struct {
	Meta     Meta      `json:"meta"`
	Sections []Section `json:"sections"`
	HTML     string    `json:"html"`
}

// GenerationResult 返回给调用方的结果
type GenerationResult struct {
	Page    *Page  `json:"page"`
	Q       string `json:"q"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"` // 聚合内容，仅调试时返回
}

// ToPage 把LLM返回的任意结构补全成Page，永不失败
// raw是json.Unmarshal到interface{}的结果；非对象一律按空对象处理
func ToPage(raw interface{}) *Page {
	obj, _ := raw.(map[string]interface{})

	page := &Page{
		Meta:     toMeta(obj["meta"]),
		Sections: toSections(obj["sections"]),
		HTML:     PlaceholderHTML,
	}
	if html, ok := obj["html"].(string); ok {
		page.HTML = html
	}
	return page
}

func toMeta(v interface{}) Meta {
	meta := Meta{Title: DefaultTitle}
	m, ok := v.(map[string]interface{})
	if !ok {
		return meta
	}
	if title, ok := m["title"].(string); ok {
		meta.Title = title
	}
	if desc, ok := m["description"].(string); ok {
		meta.Description = desc
	}
	return meta
}

// toSections 保留数量和顺序；字段类型不对的置空
func toSections(v interface{}) []Section {
	items, ok := v.([]interface{})
	if !ok {
		return []Section{}
	}
	sections := make([]Section, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]interface{})
		s := Section{}
		s.ID, _ = m["id"].(string)
		s.Title, _ = m["title"].(string)
		s.HTML, _ = m["html"].(string)
		sections = append(sections, s)
	}
	return sections
}
