package export

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"landing-gen-go/internal/model"
)

// Format 导出格式
type Format string

const (
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// Artifact 可下载的导出文件
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

const (
	// EmptyDocument page为空时的Markdown
	EmptyDocument = "# Generated Page\n\n_No content yet._"
	// NoSections sections为空时的占位行
	NoSections = "_No sections provided._"
)

// ParseFormat 解析导出格式，markdown也接受
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", eris.Errorf("unsupported export format %q (expected json, html or md)", s)
}

// Export 按格式生成下载文件
func Export(page *model.Page, format Format) (*Artifact, error) {
	switch format {
	case FormatJSON:
		body, err := ToJSON(page)
		if err != nil {
			return nil, err
		}
		return &Artifact{Filename: "page.json", ContentType: "application/json; charset=utf-8", Body: body}, nil
	case FormatHTML:
		return &Artifact{Filename: "page.html", ContentType: "text/html; charset=utf-8", Body: []byte(ToHTML(page))}, nil
	case FormatMarkdown:
		return &Artifact{Filename: "page.md", ContentType: "text/markdown; charset=utf-8", Body: []byte(ToMarkdown(page))}, nil
	}
	return nil, eris.Errorf("unsupported export format %q", format)
}

// ToJSON Page的缩进JSON
func ToJSON(page *model.Page) ([]byte, error) {
	body, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "export: marshal page")
	}
	return body, nil
}

// ToHTML 原样返回页面片段，不加任何包装
func ToHTML(page *model.Page) string {
	if page == nil {
		return ""
	}
	return page.HTML
}

// ToMarkdown 生成可读摘要，HTML只保留纯文本
func ToMarkdown(page *model.Page) string {
	if page == nil {
		return EmptyDocument
	}

	title := page.Meta.Title
	if title == "" {
		title = model.DefaultTitle
	}

	lines := []string{"# " + title, ""}
	if page.Meta.Description != "" {
		lines = append(lines, blockquote(page.Meta.Description)...)
		lines = append(lines, "")
	}

	if len(page.Sections) == 0 {
		lines = append(lines, NoSections)
		return strings.Join(lines, "\n") + "\n"
	}

	for _, s := range page.Sections {
		heading := s.Title
		if heading == "" {
			heading = s.ID
		}
		if heading == "" {
			heading = "Section"
		}
		lines = append(lines, "## "+heading, "")
		if text := HTMLToText(s.HTML); text != "" {
			lines = append(lines, text, "")
		}
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// blockquote 每一行都加 "> "，多行描述不会跑出引用块
func blockquote(text string) []string {
	src := strings.Split(strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n"), "\n")
	out := make([]string, 0, len(src))
	for _, l := range src {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			out = append(out, ">")
			continue
		}
		out = append(out, "> "+l)
	}
	return out
}

// HTMLToText 解析片段，取文本内容并去掉首尾空白
func HTMLToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
