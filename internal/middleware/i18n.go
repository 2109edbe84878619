// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/utils"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextLangKey, parseAcceptLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// parseAcceptLanguage picks the first supported language in header order,
// e.g. "pt-BR,pt;q=0.9,en;q=0.8" gives pt_BR.
func parseAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if lang := normalizeLang(tag); lang != "" && i18n.IsSupported(lang) {
			return lang
		}
	}
	return i18n.DefaultLang()
}

func normalizeLang(tag string) string {
	tag = strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
	switch {
	case tag == "pt" || strings.HasPrefix(tag, "pt-"):
		return "pt_BR"
	case tag == "en" || strings.HasPrefix(tag, "en-"):
		return "en"
	default:
		return ""
	}
}
