package lang

// Supported reply languages.
const (
	English = "en"
	Swahili = "sw"
	Amharic = "am"
	Somali  = "so"
	Arabic  = "ar"
)

var names = map[string]string{
	English: "English",
	Swahili: "Kiswahili",
	Amharic: "Amharic",
	Somali:  "Somali",
	Arabic:  "Arabic",
}

// Name returns the display name used in translation prompts.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}

// Valid reports whether code is a supported language.
func Valid(code string) bool {
	_, ok := names[code]
	return ok
}

// Sanitize maps unknown codes to English.
func Sanitize(code string) string {
	if Valid(code) {
		return code
	}
	return English
}
