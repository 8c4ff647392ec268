package utils

import "github.com/microcosm-cc/bluemonday"

// User-generated content policy: keeps benign formatting, strips scripts.
var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize strips markup that could execute from user input.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}
