package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rotisserie/eris"

	"landing-gen-go/internal/model"
)

// WaitingHTML 还没有结果时的占位
const WaitingHTML = `<main class="placeholder"><p>Waiting for output…</p></main>`

// BaselineCSS 注入到隔离文档里的固定样式
const BaselineCSS = `*,*::before,*::after{box-sizing:border-box}
body{margin:0;padding:24px;font-family:system-ui,-apple-system,"Segoe UI",Roboto,sans-serif;line-height:1.6;color:#1f2933;background:#fff}
h1,h2,h3{line-height:1.25;margin:1.2em 0 .5em}
h1{font-size:2.25rem}h2{font-size:1.6rem}h3{font-size:1.25rem}
p,ul,ol{margin:0 0 1em}
section{margin:0 auto 2rem;max-width:880px}
img,video,iframe{max-width:100%;height:auto}
a{color:#2563eb}
.btn{display:inline-block;padding:.6em 1.2em;border-radius:6px;border:1px solid #2563eb;color:#2563eb;text-decoration:none;font-weight:600}
.btn-primary{background:#2563eb;color:#fff}
.placeholder{color:#9aa5b1;text-align:center;padding-top:20vh}`

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<base target="_blank">
<style>{{.CSS}}</style>
</head>
<body>
{{.Body}}
</body>
</html>`))

var hostTmpl = template.Must(template.New("host").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>html,body{margin:0;height:100%}iframe{border:0;width:100%;height:100%;display:block}</style>
</head>
<body>
<iframe title="Page preview" sandbox="allow-popups" referrerpolicy="no-referrer" srcdoc="{{.Doc}}"></iframe>
</body>
</html>`))

// Renderer 把生成的片段放进隔离文档
// 片段和宿主页面互不影响：iframe srcdoc + sandbox，片段本身再过一遍白名单
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("main", "section", "article", "header", "footer", "nav", "aside")
	p.AllowAttrs("class").Globally()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Renderer{policy: p}
}

// Sanitize 去掉script/style/事件属性等
func (r *Renderer) Sanitize(fragment string) string {
	return strings.TrimSpace(r.policy.Sanitize(fragment))
}

// Document 生成隔离文档；page为nil时显示等待占位
// 相同输入输出相同
func (r *Renderer) Document(page *model.Page) (string, error) {
	body := WaitingHTML
	if page != nil {
		body = r.Sanitize(page.HTML)
	}

	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, struct {
		CSS  template.CSS
		Body template.HTML
	}{
		CSS:  template.CSS(BaselineCSS),
		Body: template.HTML(body), // 已经过bluemonday
	})
	if err != nil {
		return "", eris.Wrap(err, "render: document")
	}
	return buf.String(), nil
}

// Host 宿主页面，通过 iframe srcdoc 嵌入隔离文档
func (r *Renderer) Host(page *model.Page) ([]byte, error) {
	doc, err := r.Document(page)
	if err != nil {
		return nil, err
	}

	title := "Preview"
	if page != nil && page.Meta.Title != "" {
		title = page.Meta.Title
	}

	var buf bytes.Buffer
	err = hostTmpl.Execute(&buf, struct {
		Title string
		Doc   string
	}{Title: title, Doc: doc})
	if err != nil {
		return nil, eris.Wrap(err, "render: host")
	}
	return buf.Bytes(), nil
}
