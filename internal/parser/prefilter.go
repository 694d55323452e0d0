package parser

import "strings"

// casualWords are chat tokens that are never transactions.
var casualWords = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "thanks": {}, "thank": {},
	"ok": {}, "okay": {}, "yes": {}, "no": {}, "bye": {},
}

// codeFragments mark input pasted from source code rather than typed money
// notes.
var codeFragments = []string{
	"self.", "def ", "class ", "import ", "from ", "async ", "await ",
	"return ", "() {", "[]", "{}", "=>", "function(", "const ", "let ", "var ",
}

const symbolChars = "()[]{}|\\<>@#$%^&*_=+`~"

// ShouldIgnore reports whether a message is noise that should never reach
// the parser: casual chat, spam-length input, URLs, code fragments, or text
// dominated by symbol characters.
func ShouldIgnore(text string) bool {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	// Length limits count characters, not bytes, so multibyte scripts get
	// the same budget.
	length := len([]rune(text))
	if length < 2 || length > 200 {
		return true
	}

	if _, ok := casualWords[lower]; ok {
		return true
	}

	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") || strings.Contains(lower, "www.") {
		return true
	}

	for _, fragment := range codeFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}

	var symbols int
	for _, r := range text {
		if strings.ContainsRune(symbolChars, r) {
			symbols++
		}
	}
	return float64(symbols) > float64(length)*0.3
}
