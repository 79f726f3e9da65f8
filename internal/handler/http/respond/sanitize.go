package respond

import (
	"regexp"
)

var (
	// More specific patterns first: the Anthropic prefix also matches the OpenAI one.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	hfTokenPattern      = regexp.MustCompile(`hf_[a-zA-Z0-9]{8,}`)
	bearerPattern       = regexp.MustCompile(`(?i)(bearer\s+)[^\s"']+`)
	apiKeyParamPattern  = regexp.MustCompile(`(?i)([?&]api-key=)[^&\s"']*`)
)

// SanitizeError returns err's message with API keys and tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString masks API keys and tokens in msg.
func SanitizeString(msg string) string {
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = hfTokenPattern.ReplaceAllString(msg, "hf_****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
