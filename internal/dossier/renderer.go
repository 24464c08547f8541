// Package dossier renders a persona dossier (markdown or a saved response
// envelope) into a print-quality PDF via headless Chromium.
package dossier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const defaultCSS = `
body{font-family:"Noto Sans TC","Helvetica Neue",Arial,sans-serif;color:#1c1917;line-height:1.55;}
.dossier-html h1{font-size:1.6rem;border-bottom:2px solid #0f766e;padding-bottom:0.3rem;}
.dossier-html h2{font-size:1.15rem;color:#0f766e;margin-top:1.4rem;}
.dossier-html code{background:#f1f5f9;padding:0.1rem 0.3rem;border-radius:3px;font-size:0.85em;}
.dossier-html pre{background:#f8fafc;border:1px solid #e2e8f0;padding:0.6rem;overflow-x:auto;font-size:0.75rem;}
.dossier-html blockquote{border-left:3px solid #b45309;color:#78350f;margin:0;padding:0.2rem 0.8rem;background:#fffbeb;}
.dossier-badge{display:inline-block;background:#ccfbf1;color:#134e4a;border:1px solid #5eead4;border-radius:4px;padding:0.15rem 0.5rem;margin-right:0.4rem;font-size:0.75rem;font-weight:700;}
.dossier-meta{color:#44403c;font-size:0.8rem;margin-bottom:0.8rem;}
.dossier-meta strong{color:#1c1917;}
`

type ChromiumRenderer struct {
	chromePath string
	cssPath    string
	styleOnce  sync.Once
	styleCSS   string
	styleErr   error
}

// NewChromiumRenderer builds a renderer. cssPath is optional; when empty the
// built-in stylesheet is used.
func NewChromiumRenderer(cssPath string) *ChromiumRenderer {
	return &ChromiumRenderer{
		cssPath:    cssPath,
		chromePath: detectChromePath(),
	}
}

func (r *ChromiumRenderer) Render(ctx context.Context, dossier string) ([]byte, error) {
	htmlDoc, err := r.buildHTML(dossier)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

// buildHTML accepts either raw dossier markdown or a serialized response
// envelope holding report_markdown plus metadata worth surfacing as badges.
func (r *ChromiumRenderer) buildHTML(dossier string) (string, error) {
	metaHTML := ""
	badgeHTML := ""
	markdown := dossier

	var envelope map[string]any
	if json.Unmarshal([]byte(dossier), &envelope) == nil {
		if s, ok := envelope["report_markdown"].(string); ok && strings.TrimSpace(s) != "" {
			markdown = s
		}
		metaHTML = buildMetaHTML(envelope)
		badgeHTML = buildBadgeHTML(envelope)
	}

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	contentHTML := applyPrintLayoutHooks(content.String())

	styleCSS, err := r.loadStyleCSS()
	if err != nil {
		return "", err
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>Persona Dossier</title>" +
		"<style>" + styleCSS + "\n" +
		"html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;} " +
		"body{background:#fff !important;padding:0.6rem;} .pdf-wrap{max-width:1000px;margin:0 auto;} " +
		`h2[data-page-break-before="true"]{break-before:page;page-break-before:always;} ` +
		"@media print{ @page{size:auto;margin:12mm;} body{background:#fff !important;padding:0;} .pdf-wrap{max-width:none;} }" +
		"</style></head><body>" +
		"<div class='pdf-wrap'>" +
		"<div class='dossier-meta'>" + metaHTML + "</div>" +
		"<div class='dossier-badges'>" + badgeHTML + "</div>" +
		"<div class='dossier-html'>" + contentHTML + "</div></div>" +
		"</body></html>", nil
}

// applyPrintLayoutHooks forces the appendix onto its own page so the JSON
// dump never splits a narrative section.
func applyPrintLayoutHooks(contentHTML string) string {
	reAppendix := regexp.MustCompile(`(?i)<h2([^>]*)>\s*Appendix\s*</h2>`)
	return reAppendix.ReplaceAllString(contentHTML, `<h2$1 data-page-break-before="true">Appendix</h2>`)
}

func (r *ChromiumRenderer) loadStyleCSS() (string, error) {
	r.styleOnce.Do(func() {
		if r.cssPath == "" {
			r.styleCSS = defaultCSS
			return
		}
		b, err := os.ReadFile(r.cssPath)
		if err != nil {
			r.styleErr = fmt.Errorf("read stylesheet: %w", err)
			return
		}
		r.styleCSS = string(b)
	})
	return r.styleCSS, r.styleErr
}

func buildMetaHTML(env map[string]any) string {
	var out strings.Builder
	if id := stringValue(env["persona_id"]); id != "" {
		out.WriteString("<div><strong>Persona:</strong> " + html.EscapeString(id) + "</div>")
	}
	if completed := lookupString(env, "pipeline_metadata", "completed_at"); completed != "" {
		if ts, err := time.Parse(time.RFC3339Nano, completed); err == nil {
			out.WriteString("<div><strong>Built:</strong> " + html.EscapeString(ts.In(time.Local).Format("January 2, 2006 at 3:04 PM MST")) + "</div>")
		} else {
			out.WriteString("<div><strong>Built:</strong> " + html.EscapeString(completed) + "</div>")
		}
	}
	return out.String()
}

func buildBadgeHTML(env map[string]any) string {
	var out strings.Builder
	if c := lookupString(env, "persona", "context_profile", "monetary_class"); c != "" {
		out.WriteString("<span class='dossier-badge'>" + html.EscapeString(c) + "</span>")
	}
	if c := lookupString(env, "persona", "origin", "reality_check", "coherence_level"); c != "" {
		out.WriteString("<span class='dossier-badge'>Coherence: " + html.EscapeString(c) + "</span>")
	}
	if q := lookupString(env, "persona", "system_state", "psychological_quadrant"); q != "" {
		out.WriteString("<span class='dossier-badge'>" + html.EscapeString(q) + "</span>")
	}
	return out.String()
}

func lookupString(root map[string]any, path ...string) string {
	var cur any = root
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[p]
	}
	return stringValue(cur)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
