package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
)

//go:embed locales/*.json
var locales embed.FS

const DefaultLang = "en"

// translations maps a two-letter language code to its message table.
var translations = map[string]map[string]string{}

func init() {
	if err := LoadTranslations(locales, "locales"); err != nil {
		panic(fmt.Sprintf("loading embedded translations: %v", err))
	}
}

// LoadTranslations replaces the tables with every <dir>/<lang>.json in
// fsys. The default language must be among them. On error the current
// tables are kept.
func LoadTranslations(fsys fs.FS, dir string) error {
	files, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	loaded := make(map[string]map[string]string, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return err
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("%s: %w", path.Base(file), err)
		}
		loaded[strings.TrimSuffix(path.Base(file), ".json")] = table
	}
	if _, ok := loaded[DefaultLang]; !ok {
		return fmt.Errorf("no %s.json in %s", DefaultLang, dir)
	}
	translations = loaded
	return nil
}

// T returns the message for key, falling back to English and then to the
// key itself.
func T(lang, key string) string {
	if val, ok := translations[lang][key]; ok {
		return val
	}
	if val, ok := translations[DefaultLang][key]; ok {
		return val
	}
	return key
}

// DetectLanguage picks the supported language with the highest q-value in
// Accept-Language, e.g. "fr-CH, fr;q=0.9, en;q=0.8".
func DetectLanguage(r *http.Request) string {
	best, bestQ := DefaultLang, 0.0
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if len(tag) < 2 {
			continue
		}
		lang := strings.ToLower(tag[:2])
		if _, ok := translations[lang]; !ok {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		if q > bestQ {
			best, bestQ = lang, q
		}
	}
	return best
}
