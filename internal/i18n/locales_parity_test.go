package i18n

import (
	"encoding/json"
	"io/fs"
	"sort"
	"strings"
	"testing"
)

func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, "en")
	ja := mustLoadLocaleMessages(t, "ja")

	missingInJA := missingKeys(en, ja)
	missingInEN := missingKeys(ja, en)

	if len(missingInJA) == 0 && len(missingInEN) == 0 {
		return
	}

	if len(missingInJA) > 0 {
		t.Errorf("keys missing in ja locale: %s", strings.Join(missingInJA, ", "))
	}
	if len(missingInEN) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missingInEN, ", "))
	}
}

func TestLocaleFormatVerbsParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, "en")
	ja := mustLoadLocaleMessages(t, "ja")

	for key, value := range en {
		if strings.Count(value, "%s") != strings.Count(ja[key], "%s") {
			t.Errorf("format verbs differ for %s: en=%q ja=%q", key, value, ja[key])
		}
	}
}

func mustLoadLocaleMessages(t *testing.T, language string) map[string]string {
	t.Helper()

	content, err := fs.ReadFile(Locales, "locales/"+language+".json")
	if err != nil {
		t.Fatalf("read locale %q: %v", language, err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		t.Fatalf("parse locale %q: %v", language, err)
	}
	if len(messages) == 0 {
		t.Fatalf("locale %q is empty", language)
	}

	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
