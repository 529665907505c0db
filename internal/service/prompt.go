package service

import (
	"fmt"
	"strings"

	"landing-gen-go/internal/model"
)

// Prompt 发送给LLM的指令对
type Prompt struct {
	System string
	User   string
}

// systemPrompt 与角色无关，固定不变
const systemPrompt = `You are a landing page writer. You turn source material into a structured, factual landing page.

Return ONLY a single JSON object with exactly this shape:
{
  "meta": { "title": "string", "description": "string" },
  "sections": [
    { "id": "kebab-case-id", "title": "Section title", "html": "<section>...</section>" }
  ],
  "html": "<main>...</main>"
}

Rules:
- Output must be strict, machine-parseable JSON. No markdown fences, no commentary before or after.
- Use only facts present in the source content. Never invent facts, numbers, quotes, testimonials or reviews.
- "html" is one self-contained fragment containing every section in order.
- Use semantic HTML only: h1, h2, h3, p, ul, ol, li, section, a, strong, em.
- Do not include <style>, <script>, inline style attributes or event handlers.
- Section ids must be unique within the page.`

// roleSuffixes 每个角色建议的分区和免责说明，只用来引导模型，不做校验
var roleSuffixes = map[model.Role]string{
	model.RoleAgent: `Page type: real estate agent / property listing.
Suggested sections, in order:
1. Hero
2. Listing Highlights
3. Property Description
4. Neighborhood Vibe
5. Call to Action`,

	model.RoleLoan: `Page type: loan officer / mortgage programs.
Suggested sections, in order:
1. Hero
2. Programs Overview
3. Rates Summary
4. FAQ
5. Call to Action
Disclaimer: do not claim live, current or guaranteed rates unless the source content states specific figures. If rates are mentioned, present them as examples from the source and note that rates change.`,

	model.RoleProfile: `Page type: professional profile.
Suggested sections, in order:
1. Hero
2. Bio
3. Services/Specialties
4. Reviews/Press
5. Links
6. Contact
Include each section only if the source content contains material for it. Reviews/Press must quote the source verbatim or be omitted.`,
}

// Compose 组装system和user指令
// content应当已经截断过
func Compose(role model.Role, query, content string) Prompt {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Query: %s\n\n", query)
	sb.WriteString("Source content:\n")
	sb.WriteString("<<<\n")
	sb.WriteString(content)
	sb.WriteString("\n>>>\n\n")
	sb.WriteString("If the source content is insufficient for a section, omit that section entirely rather than fabricating its content.\n\n")

	suffix, ok := roleSuffixes[role]
	if !ok {
		suffix = roleSuffixes[model.RoleAgent]
	}
	sb.WriteString(suffix)

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
	}
}
