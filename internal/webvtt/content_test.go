package webvtt

import "testing"

func TestParseContentTags(t *testing.T) {
	root := ParseContent("<c.yellow.bg_blue.loud>hi</c> <i>there</i> <v.first  Bob >you</v>")

	if root.Kind != NodeRoot || len(root.Children) != 5 {
		t.Fatalf("expected 5 root children, got %d", len(root.Children))
	}

	class := root.Children[0]
	if class.Kind != NodeClass {
		t.Fatalf("expected class node, got %s", class.Kind)
	}
	if len(class.Classes) != 3 || class.Classes[0] != "yellow" || class.Classes[2] != "loud" {
		t.Errorf("unexpected classes %v", class.Classes)
	}
	if class.Color != "rgba(255,255,0,1)" || class.BackgroundColor != "rgba(0,0,255,1)" {
		t.Errorf("unexpected colors %q / %q", class.Color, class.BackgroundColor)
	}
	if class.TextContent() != "hi" {
		t.Errorf("unexpected text %q", class.TextContent())
	}

	if root.Children[2].Kind != NodeItalic {
		t.Errorf("expected italic, got %s", root.Children[2].Kind)
	}

	voice := root.Children[4]
	if voice.Kind != NodeVoice || voice.Annotation != "Bob" {
		t.Errorf("unexpected voice node %+v", voice)
	}
	if len(voice.Classes) != 1 || voice.Classes[0] != "first" {
		t.Errorf("unexpected voice classes %v", voice.Classes)
	}

	if got := root.TextContent(); got != "hi there you" {
		t.Errorf("unexpected text content %q", got)
	}
}

func TestParseContentMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown tag keeps text", "<foo>x</foo>y", "xy"},
		{"unmatched end tag", "</b>text", "text"},
		{"unclosed tag", "<b>bold", "bold"},
		{"mismatched end tag is ignored", "<b>a</i>b</b>c", "abc"},
		{"dangling angle", "a <", "a "},
		{"entities", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"rt outside ruby is dropped", "a<rt>gone</rt>b", "ab"},
		{"rt in ruby", "<ruby>漢<rt>kan</rt></ruby>", "漢kan"},
		{"digit tag skipped", "<1>x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseContent(tt.input).TextContent(); got != tt.want {
				t.Errorf("ParseContent(%q) text = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseContentNesting(t *testing.T) {
	root := ParseContent("<b>one <u>two</u></b><ruby>base<rt>top</rt></ruby>")

	bold := root.Children[0]
	if bold.Kind != NodeBold || len(bold.Children) != 2 || bold.Children[1].Kind != NodeUnderline {
		t.Fatalf("unexpected bold subtree %+v", bold)
	}

	ruby := root.Children[1]
	if ruby.Kind != NodeRuby || len(ruby.Children) != 2 || ruby.Children[1].Kind != NodeRubyText {
		t.Fatalf("unexpected ruby subtree %+v", ruby)
	}
}

func TestParseContentTimestampsAndLanguage(t *testing.T) {
	root := ParseContent("<lang en-GB>one <00:00:01.500>two <00:00:00.000>three</lang>")

	lang := root.Children[0]
	if lang.Kind != NodeLanguage || lang.Annotation != "en-GB" {
		t.Fatalf("unexpected lang node %+v", lang)
	}

	var marks []float64
	for _, c := range lang.Children {
		if c.Kind == NodeTimestamp {
			marks = append(marks, c.Timestamp)
		}
	}
	if len(marks) != 2 || marks[0] != 1.5 || marks[1] != 0 {
		t.Errorf("unexpected timestamp markers %v", marks)
	}
	if got := root.TextContent(); got != "one two three" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestDetermineDirection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Direction
	}{
		{"latin", "hello world", LTR},
		{"empty", "", LTR},
		{"hebrew", "שלום", RTL},
		{"arabic inside markup", "<i><b>مرحبا</b></i>", RTL},
		{"rtl after ltr in first line", "abc שלום", RTL},
		{"rtl only after newline", "hello\nשלום", LTR},
		{"rtl after line separator", "hello\u2028שלום", LTR},
		{"rtl in a later node after newline", "<b>a\nb</b><i>שלום</i>", LTR},
		{"skips empty nodes", "<b></b><i>שלום</i>", RTL},
		{"right-to-left mark", "\u200fabc", RTL},
		{"ruby base", "<ruby>שלום<rt>x</rt></ruby>", RTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineDirection(ParseContent(tt.input)); got != tt.want {
				t.Errorf("DetermineDirection(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	if got := DetermineDirection(nil); got != LTR {
		t.Errorf("nil tree should be ltr, got %s", got)
	}
}
