package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var embedded embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder overrides the bundled translation files when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if len(cfg.SupportedLanguages) > 0 {
		tags := make([]language.Tag, 0, len(cfg.SupportedLanguages))
		for _, lang := range cfg.SupportedLanguages {
			if tag, err := language.Parse(lang); err == nil {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			matcher = language.NewMatcher(tags)
		}
	}

	if cfg.TranslationFolder == "" {
		loadFS(embedded, "translation")
		return
	}
	loadFS(os.DirFS(cfg.TranslationFolder), ".")
}

func loadFS(fsys fs.FS, dir string) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", dir), zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".toml") {
			continue
		}
		path := fmt.Sprintf("%s/%s", dir, f.Name())
		if dir == "." {
			path = f.Name()
		}
		if _, err := Translator.LoadMessageFileFS(fsys, path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// MatchLanguage picks the best supported base language for an Accept-Language header.
func MatchLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}
