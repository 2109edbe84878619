// internal/handlers/pages.go
package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

var outcomeTemplate = template.Must(template.New("outcome").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
{{if .Refresh}}<meta http-equiv="refresh" content="{{.Refresh}};url=/">{{end}}
<title>{{.Title}}</title>
<style>
  body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Arial,sans-serif;margin:0;background:#f6f7fb;color:#222}
  .wrap{max-width:720px;margin:10vh auto;padding:32px;background:#fff;border-radius:16px;box-shadow:0 10px 30px rgba(0,0,0,.06)}
  h2{margin:0 0 8px} p{margin:8px 0 0}
  .muted{color:#667}
  .btn{display:inline-block;margin-top:16px;padding:10px 16px;border-radius:10px;background:#004461;color:#fff;text-decoration:none}
</style>
</head>
<body>
<div class="wrap">
  <h2>{{.Title}}</h2>
  <p>{{.Message}}</p>
  {{if .Refresh}}<p class="muted">{{.Notice}}</p>{{end}}
  <a class="btn" href="/">{{.Back}}</a>
</div>
</body>
</html>
`))

type outcomePage struct {
	Lang    string
	Title   string
	Message string
	Notice  string
	Back    string
	Refresh int
}

var outcomeKeys = map[services.Outcome][2]string{
	services.OutcomeApproved: {i18n.KeyPageApprovedTitle, i18n.KeyPageApprovedMessage},
	services.OutcomePending:  {i18n.KeyPagePendingTitle, i18n.KeyPagePendingMessage},
	services.OutcomeFailed:   {i18n.KeyPageFailedTitle, i18n.KeyPageFailedMessage},
}

// renderOutcome writes a localized result page. A positive refresh sends
// the browser back to the store after that many seconds.
func renderOutcome(c *gin.Context, outcome services.Outcome, refresh int) {
	lang := utils.GetLangFromContext(c)
	keys := outcomeKeys[outcome]

	page := outcomePage{
		Lang:    strings.ReplaceAll(lang, "_", "-"),
		Title:   i18n.T(lang, keys[0]),
		Message: i18n.T(lang, keys[1]),
		Notice:  i18n.T(lang, i18n.KeyPageRedirectNotice),
		Back:    i18n.T(lang, i18n.KeyPageBack),
		Refresh: refresh,
	}
	if refresh > 0 {
		page.Back = i18n.T(lang, i18n.KeyPageBackNow)
	}

	var buf bytes.Buffer
	if err := outcomeTemplate.Execute(&buf, page); err != nil {
		requestLogger(c).WithError(err).Error("Failed to render outcome page")
		c.String(http.StatusInternalServerError, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
