package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// RichTextNode is one node of an editor document.
type RichTextNode struct {
	Type    string         `mapstructure:"type"`
	Text    string         `mapstructure:"text"`
	Attrs   map[string]any `mapstructure:"attrs"`
	Content []RichTextNode `mapstructure:"content"`
}

// Normalize flattens article content to plain text. Content may be plain
// text, a rich-text document serialized as a JSON string, or an already
// decoded document.
func Normalize(content any) string {
	switch c := content.(type) {
	case nil:
		return ""
	case string:
		var doc any
		if err := json.Unmarshal([]byte(c), &doc); err != nil {
			return strings.TrimSpace(c)
		}
		if text, ok := flatten(doc); ok {
			return text
		}
		return strings.TrimSpace(c)
	default:
		if text, ok := flatten(c); ok {
			return text
		}
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

func flatten(doc any) (string, bool) {
	var nodes []RichTextNode
	switch d := doc.(type) {
	case map[string]any:
		var node RichTextNode
		if err := mapstructure.Decode(d, &node); err != nil {
			return "", false
		}
		nodes = []RichTextNode{node}
	case []any:
		if err := mapstructure.Decode(d, &nodes); err != nil {
			return "", false
		}
	default:
		return "", false
	}

	parts := make([]string, 0)
	for _, n := range nodes {
		parts = collectText(n, parts)
	}
	return CollapseWhitespace(strings.Join(parts, " ")), true
}

// collectText walks the tree depth first, taking text nodes and attrs.text.
func collectText(node RichTextNode, parts []string) []string {
	if node.Type == "text" && node.Text != "" {
		parts = append(parts, node.Text)
	}
	if t, ok := node.Attrs["text"].(string); ok && t != "" {
		parts = append(parts, t)
	}
	for _, child := range node.Content {
		parts = collectText(child, parts)
	}
	return parts
}

func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
