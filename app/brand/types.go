package brand

// Guidelines represents a brand guidelines configuration file
type Guidelines struct {
	Voice               string   `yaml:"voice"`
	Tone                string   `yaml:"tone"`
	BannedPhrases       []string `yaml:"banned_phrases"`
	RequiredDisclosures []string `yaml:"required_disclosures"`
	Notes               []string `yaml:"notes"`
}
