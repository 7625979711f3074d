package cfg

type Cfg struct {
	// Input/output paths
	FeedsPath string
	OutDir    string
	DBPath    string
	URLFilter string

	// Translation configuration
	TargetLang   string
	Translator   string
	OpenAIModel  string
	OpenAIAPIKey string
	GeminiModel  string
	GeminiAPIKey string

	// Pipeline tuning
	HTTPTimeout  int
	MaxItems     int
	MaxChars     int
	FetchWorkers int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
