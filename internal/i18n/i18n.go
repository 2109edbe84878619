// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var (
	instance *I18n
	once     sync.Once
	loadErr  error
)

func load() {
	instance = &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  "pt_BR",
	}
	loadErr = instance.LoadTranslations()
}

// Initialize loads the embedded catalogs and sets the fallback language.
func Initialize(defaultLang string) error {
	once.Do(load)
	if loadErr != nil {
		return loadErr
	}
	if defaultLang != "" {
		instance.mu.Lock()
		instance.defaultLang = defaultLang
		instance.mu.Unlock()
	}
	return nil
}

func (i *I18n) LoadTranslations() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := path.Join("locales", entry.Name())

		data, err := localeFS.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// Try to get translation for requested language
	if text, ok := i.lookup(lang, key); ok {
		return format(text, args)
	}

	// Fallback to default language
	if text, ok := i.lookup(i.defaultLang, key); ok {
		return format(text, args)
	}

	// Return key if no translation found
	return key
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	translations, exists := i.translations[lang]
	if !exists {
		return "", false
	}
	text, exists := translations[key]
	return text, exists
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	once.Do(load)
	return instance.T(lang, key, args...)
}

func DefaultLang() string {
	once.Do(load)
	instance.mu.RLock()
	defer instance.mu.RUnlock()
	return instance.defaultLang
}

func IsSupported(lang string) bool {
	once.Do(load)
	instance.mu.RLock()
	defer instance.mu.RUnlock()
	_, ok := instance.translations[lang]
	return ok
}
