// Package captions produces short platform-appropriate caption drafts from a
// theme. Drafting is a local template expansion, deterministic for identical
// input; it deliberately involves no model call.
package captions

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// platformHooks append a platform-native call to action.
var platformHooks = map[string]string{
	"Instagram": "Save this post for later!",
	"TikTok":    "Follow for more like this.",
	"Facebook":  "Share this with someone who needs it.",
	"LinkedIn":  "What has your experience been?",
}

const defaultHook = "Let us know what you think."

// Draft renders a caption for the given theme and platform. Hashtags are
// appended verbatim when present; the theme is title-cased per locale.
func Draft(theme, platform, locale string, hashtags []string) string {
	titler := cases.Title(localeTag(locale))
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = "our latest update"
	}

	hook := platformHooks[platform]
	if hook == "" {
		hook = defaultHook
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: here's what you should know this week.", titler.String(theme))
	b.WriteString(" ")
	b.WriteString(hook)
	if len(hashtags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(hashtags, " "))
	}
	return b.String()
}

func localeTag(locale string) language.Tag {
	switch strings.ToLower(locale) {
	case "id":
		return language.Indonesian
	case "en", "":
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und
	}
	return tag
}
