package preview

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/prompt-styler/core/internal/modules/style"
)

var fontStacks = map[style.Font]string{
	style.FontSans:    `-apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif`,
	style.FontSerif:   `Georgia, "Times New Roman", serif`,
	style.FontMono:    `"SF Mono", Menlo, Consolas, monospace`,
	style.FontCursive: `cursive`,
	style.FontFantasy: `fantasy`,
}

var backgroundCSS = map[style.Background]string{
	style.BackgroundGradientBlue:  "linear-gradient(to bottom right, #60a5fa, #9333ea)",
	style.BackgroundGradientGreen: "linear-gradient(to bottom right, #4ade80, #3b82f6)",
	style.BackgroundGradientPink:  "linear-gradient(to bottom right, #f472b6, #f97316)",
}

var cardCSS = map[style.CardStyle]string{
	style.CardModernWhite:    "background: #ffffff; color: #111827; border-radius: 16px; box-shadow: 0 20px 25px rgba(0,0,0,0.15);",
	style.CardDark:           "background: #111827; color: #ffffff; border-radius: 8px; box-shadow: 0 25px 50px rgba(0,0,0,0.25);",
	style.CardSubtleGradient: "background: linear-gradient(to bottom right, #ffffff, #f3f4f6); color: #111827; border-radius: 12px; box-shadow: 0 10px 15px rgba(0,0,0,0.1);",
}

// renderHTML builds the standalone preview document. The markup body comes
// out of the sanitizer, so it is embedded as-is; everything else is escaped.
func renderHTML(title string, plan Plan, st style.Settings) string {
	escapedTitle := template.HTMLEscapeString(strings.TrimSpace(title))
	if escapedTitle == "" {
		escapedTitle = "Prompt Preview"
	}
	overflowNote := ""
	if plan.Overflow {
		overflowNote = `<p class="overflow-note">Content overflows the card and may clip on export.</p>`
	}
	return `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>` + escapedTitle + `</title>
  <style>
    body { margin: 0; display: flex; align-items: center; justify-content: center; min-height: 100vh; background: ` + backgroundCSS[st.Background] + `; }
    .card { ` + cardCSS[st.CardStyle] + ` width: ` + fmt.Sprint(plan.CardWidth) + `px; max-height: ` + fmt.Sprint(plan.CardHeight) + `px; overflow: hidden; padding: 32px; box-sizing: border-box; }
    .card .content { font-family: ` + fontStacks[st.Font] + `; font-size: ` + fmt.Sprint(plan.FontSize) + `px; line-height: 1.625; word-wrap: break-word; }
    .overflow-note { position: fixed; top: 12px; left: 50%; transform: translateX(-50%); margin: 0; padding: 6px 12px; border-radius: 6px; background: #fef3c7; color: #92400e; font: 13px/1.4 sans-serif; }
  </style>
</head>
<body>
  ` + overflowNote + `
  <div class="card">
    <div class="content">` + plan.Markup + `</div>
  </div>
</body>
</html>`
}
