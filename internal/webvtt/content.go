package webvtt

import (
	"html"
	"regexp"
	"strings"
)

// NodeKind tags the variant held by a Node.
type NodeKind int

const (
	NodeRoot NodeKind = iota
	NodeText
	NodeClass
	NodeItalic
	NodeBold
	NodeUnderline
	NodeRuby
	NodeRubyText
	NodeVoice
	NodeLanguage
	NodeTimestamp
)

var nodeKindNames = map[NodeKind]string{
	NodeRoot:      "root",
	NodeText:      "text",
	NodeClass:     "c",
	NodeItalic:    "i",
	NodeBold:      "b",
	NodeUnderline: "u",
	NodeRuby:      "ruby",
	NodeRubyText:  "rt",
	NodeVoice:     "v",
	NodeLanguage:  "lang",
	NodeTimestamp: "timestamp",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

var tagKinds = map[string]NodeKind{
	"c":    NodeClass,
	"i":    NodeItalic,
	"b":    NodeBold,
	"u":    NodeUnderline,
	"ruby": NodeRuby,
	"rt":   NodeRubyText,
	"v":    NodeVoice,
	"lang": NodeLanguage,
}

// a tag kind that may only open directly inside the given parent kind
var requiredParent = map[NodeKind]NodeKind{
	NodeRubyText: NodeRuby,
}

// default palette for color classes, "bg_" selects the background
var colorClasses = map[string]string{
	"white":   "rgba(255,255,255,1)",
	"lime":    "rgba(0,255,0,1)",
	"cyan":    "rgba(0,255,255,1)",
	"red":     "rgba(255,0,0,1)",
	"yellow":  "rgba(255,255,0,1)",
	"magenta": "rgba(255,0,255,1)",
	"blue":    "rgba(0,0,255,1)",
	"black":   "rgba(0,0,0,1)",
}

var cueTagRegex = regexp.MustCompile(`^<([^.\s/0-9>]+)(\.[^\s\\>]+)?([^>\\]+)?(\\?)>?$`)

// Node is one element of a parsed cue text tree.
//
// Text is set for NodeText, Timestamp for NodeTimestamp. Annotation holds the
// voice name of a "v" tag and the language of a "lang" tag.
type Node struct {
	Kind            NodeKind
	Text            string
	Timestamp       float64
	Classes         []string
	Color           string
	BackgroundColor string
	Annotation      string
	Children        []*Node
}

func (n *Node) appendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// TextContent concatenates the text of every descendant text node.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == NodeText {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

type openTag struct {
	name string
	node *Node
}

// ParseContent tokenizes cue text markup into a node tree. Malformed markup
// never fails: unknown tags and unmatched end tags are skipped, while the text
// around them is kept.
func ParseContent(input string) *Node {
	root := &Node{Kind: NodeRoot}
	stack := []openTag{{node: root}}
	current := func() *Node { return stack[len(stack)-1].node }

	for input != "" {
		var tok string
		tok, input = nextContentToken(input)

		if tok[0] != '<' {
			current().appendChild(&Node{Kind: NodeText, Text: html.UnescapeString(tok)})
			continue
		}

		if len(tok) > 1 && tok[1] == '/' {
			name := strings.Replace(tok[2:], ">", "", 1)
			if len(stack) > 1 && stack[len(stack)-1].name == name {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if len(tok) >= 2 {
			if ts, err := ParseTimestamp(tok[1 : len(tok)-1]); err == nil {
				current().appendChild(&Node{Kind: NodeTimestamp, Timestamp: ts})
				continue
			}
		}

		m := cueTagRegex.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		kind, ok := tagKinds[m[1]]
		if !ok {
			continue
		}

		node := &Node{Kind: kind}
		if (kind == NodeVoice || kind == NodeLanguage) && m[3] != "" {
			node.Annotation = strings.TrimSpace(m[3])
		}
		if m[2] != "" {
			applyClasses(node, m[2])
		}

		// a misplaced node still collects its subtree, it just never gets attached
		if parent, ok := requiredParent[kind]; !ok || current().Kind == parent {
			current().appendChild(node)
		}
		stack = append(stack, openTag{name: m[1], node: node})
	}

	return root
}

// splits off either a text run or one tag from the front of input
func nextContentToken(input string) (string, string) {
	if input[0] != '<' {
		if i := strings.IndexByte(input, '<'); i >= 0 {
			return input[:i], input[i:]
		}
		return input, ""
	}
	if i := strings.IndexByte(input, '>'); i >= 0 {
		return input[:i+1], input[i+1:]
	}
	return input, ""
}

func applyClasses(node *Node, classList string) {
	for _, class := range strings.Split(strings.TrimPrefix(classList, "."), ".") {
		if class == "" {
			continue
		}
		node.Classes = append(node.Classes, class)
		name, background := strings.CutPrefix(class, "bg_")
		color, ok := colorClasses[name]
		if !ok {
			continue
		}
		if background {
			node.BackgroundColor = color
		} else {
			node.Color = color
		}
	}
}
