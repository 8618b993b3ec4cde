// Package locales holds the message catalogues used for field errors, chart
// labels and notification emails.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sync"
)

const DefaultLang = "pl"

//go:embed *.json
var files embed.FS

var (
	loadOnce   sync.Once
	catalogues map[string]map[string]string
	raw        map[string][]byte
)

func load() {
	loadOnce.Do(func() {
		catalogues = map[string]map[string]string{}
		raw = map[string][]byte{}
		entries, err := files.ReadDir(".")
		if err != nil {
			panic(err)
		}
		for _, e := range entries {
			data, err := files.ReadFile(e.Name())
			if err != nil {
				panic(err)
			}
			msgs := map[string]string{}
			if err := json.Unmarshal(data, &msgs); err != nil {
				panic(fmt.Sprintf("locales: %s: %v", e.Name(), err))
			}
			lang := e.Name()[:len(e.Name())-len(path.Ext(e.Name()))]
			catalogues[lang] = msgs
			raw[lang] = data
		}
	})
}

// Raw returns the JSON catalogue for lang as shipped.
func Raw(lang string) ([]byte, bool) {
	load()
	data, ok := raw[lang]
	return data, ok
}

func Supported(lang string) bool {
	load()
	_, ok := catalogues[lang]
	return ok
}

// T looks a key up in lang, falling back to the default language and then to
// the key itself.
func T(lang, key string, args ...any) string {
	load()
	msg, ok := catalogues[lang][key]
	if !ok {
		msg, ok = catalogues[DefaultLang][key]
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
