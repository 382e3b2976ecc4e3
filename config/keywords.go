package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywords []byte

// Keywords are the word lists used for keyword-polarity analysis. Order is
// significant: it breaks ties when ranking themes.
type Keywords struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// DefaultKeywords returns the built-in Spanish keyword lists.
func DefaultKeywords() Keywords {
	kw, err := parseKeywords(defaultKeywords)
	if err != nil {
		panic("config: embedded keywords.yaml is invalid: " + err.Error())
	}
	return kw
}

// LoadKeywords reads keyword lists from a YAML file. An empty path returns
// DefaultKeywords.
func LoadKeywords(path string) (Keywords, error) {
	if path == "" {
		return DefaultKeywords(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, eris.Wrapf(err, "config: read keywords %s", path)
	}
	return parseKeywords(data)
}

func parseKeywords(data []byte) (Keywords, error) {
	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return Keywords{}, eris.Wrap(err, "config: parse keywords")
	}
	kw.Positive = cleanWords(kw.Positive)
	kw.Negative = cleanWords(kw.Negative)
	if len(kw.Positive) == 0 || len(kw.Negative) == 0 {
		return Keywords{}, eris.New("config: keywords need at least one positive and one negative word")
	}
	return kw, nil
}

// cleanWords lower-cases, trims and de-duplicates while keeping first-seen order.
func cleanWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
