package util

import "github.com/telerehab/dashboard-api/model"

// Translator resolves translation keys for a fixed language. It only
// carries the keys the dashboard actually renders indirectly: seeded
// patient names and a handful of labels.
type Translator struct {
	lang   string
	tables map[string]map[string]string
}

var translationTables = map[string]map[string]string{
	"en": {
		"patients.amitSharma":   "Amit Sharma",
		"patients.sitaDevi":     "Sita Devi",
		"patients.rameshKumar":  "Ramesh Kumar",
		"patients.priyaPatel":   "Priya Patel",
		"patients.vikramSingh":  "Vikram Singh",
		"chart.noData":          "No data for this period",
		"chart.admissions":      "Admissions",
		"chart.recoveries":      "Recoveries",
		"source.remote":         "Live clinic API",
		"source.mock":           "Local sample data",
		"source.probing":        "Checking availability",
	},
	"hi": {
		"patients.amitSharma":   "अमित शर्मा",
		"patients.sitaDevi":     "सीता देवी",
		"patients.rameshKumar":  "रमेश कुमार",
		"patients.priyaPatel":   "प्रिया पटेल",
		"patients.vikramSingh":  "विक्रम सिंह",
		"chart.noData":          "इस अवधि के लिए कोई डेटा नहीं",
		"chart.admissions":      "भर्ती",
		"chart.recoveries":      "स्वस्थ",
		"source.remote":         "लाइव क्लिनिक API",
		"source.mock":           "स्थानीय नमूना डेटा",
		"source.probing":        "उपलब्धता जाँची जा रही है",
	},
}

// NewTranslator returns a translator for the given language code, falling
// back to English for unknown codes.
func NewTranslator(lang string) *Translator {
	if _, ok := translationTables[lang]; !ok {
		lang = "en"
	}
	return &Translator{lang: lang, tables: translationTables}
}

// Lang returns the resolved language code.
func (t *Translator) Lang() string {
	return t.lang
}

// Translate looks up key in the active language table, falling back to the
// English table, then to the key itself.
func (t *Translator) Translate(key string) string {
	if v, ok := t.tables[t.lang][key]; ok {
		return v
	}
	if v, ok := t.tables["en"][key]; ok {
		return v
	}
	return key
}

// ResolveDisplayName picks the rendered name for a record: the translated
// NameKey when one exists in the active table, otherwise the literal Name.
func (t *Translator) ResolveDisplayName(record model.PatientRecord) string {
	if record.NameKey != "" {
		if v, ok := t.tables[t.lang][record.NameKey]; ok {
			return v
		}
		if v, ok := t.tables["en"][record.NameKey]; ok {
			return v
		}
	}
	return record.Name
}

// KnownLanguage reports whether code has a translation table.
func KnownLanguage(code string) bool {
	_, ok := translationTables[code]
	return ok
}
