package message

// previewLimit caps the room's lastMessagePreview length, in runes.
const previewLimit = 200

// preview is the first 200 characters of the message content, verbatim.
// Short content must round-trip unchanged into lastMessagePreview, so the
// content is never rewritten, only cut.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return content
}
