package extract

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rules holds the tunable vocabulary and gates of the pipeline. Defaults
// cover the Australian workers'-comp ticket corpus the system was built for;
// a YAML rules file can override any list for other jurisdictions without a
// redeploy.
type Rules struct {
	CustomFieldKeys  []string `yaml:"custom_field_keys"`
	InjuryKeywords   []string `yaml:"injury_keywords"`
	TemporalKeywords []string `yaml:"temporal_keywords"`
	MedicalKeywords  []string `yaml:"medical_keywords"`

	// Decider corpus-length gates.
	LongCorpusChars    int `yaml:"long_corpus_chars"`
	LowConfCorpusChars int `yaml:"low_conf_corpus_chars"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		CustomFieldKeys: []string{"injury_date", "date_of_injury", "cf_injury_date"},
		InjuryKeywords: []string{
			"injured", "injury", "accident", "incident", "occurred", "happened", "hurt",
		},
		TemporalKeywords: []string{
			"ago", "since", "around", "shortly after", "a while", "recently",
		},
		MedicalKeywords: []string{
			"medical certificate", "workcover", "incident report",
			"physiotherapy", "claim form", "first aid",
		},
		LongCorpusChars:    500,
		LowConfCorpusChars: 100,
	}
}

// LoadRules reads a rules file and overlays it on the defaults. Empty lists
// in the file keep the built-in values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, eris.Wrapf(err, "extract: read rules %s", path)
	}

	var override Rules
	if err := yaml.Unmarshal(data, &override); err != nil {
		return rules, eris.Wrap(err, "extract: parse rules")
	}

	if len(override.CustomFieldKeys) > 0 {
		rules.CustomFieldKeys = override.CustomFieldKeys
	}
	if len(override.InjuryKeywords) > 0 {
		rules.InjuryKeywords = override.InjuryKeywords
	}
	if len(override.TemporalKeywords) > 0 {
		rules.TemporalKeywords = override.TemporalKeywords
	}
	if len(override.MedicalKeywords) > 0 {
		rules.MedicalKeywords = override.MedicalKeywords
	}
	if override.LongCorpusChars > 0 {
		rules.LongCorpusChars = override.LongCorpusChars
	}
	if override.LowConfCorpusChars > 0 {
		rules.LowConfCorpusChars = override.LowConfCorpusChars
	}

	return rules, nil
}
