package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestOpenSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	track, err := Open(writeTemp(t, "test.srt", content), OpenOptions{})
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}

	if track.Format != FormatSRT {
		t.Errorf("expected format SRT, got %s", track.Format)
	}
	if len(track.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(track.Cues))
	}
	if track.Cues[0].StartTime != 1 || track.Cues[0].EndTime != 4 {
		t.Errorf("cue 0: unexpected timing %v --> %v", track.Cues[0].StartTime, track.Cues[0].EndTime)
	}
	if track.Cues[1].StartTime != 5.5 || track.Cues[1].ID != "2" {
		t.Errorf("cue 1: unexpected cue %+v", track.Cues[1])
	}
	if want := "This is a test.\nWith multiple lines."; track.Cues[1].Text != want {
		t.Errorf("cue 1: expected %q, got %q", want, track.Cues[1].Text)
	}
	if track.Duration() != 12.5 {
		t.Errorf("expected duration 12.5, got %v", track.Duration())
	}
}

func TestOpenSRTSkipsMalformedBlock(t *testing.T) {
	content := "\ufeff1\r\nnot a timing line\r\nlost\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nkept\r\n"
	track, err := Open(writeTemp(t, "broken.srt", content), OpenOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(track.Cues) != 1 || track.Cues[0].Text != "kept" {
		t.Fatalf("expected only the valid cue, got %+v", track.Cues)
	}
	if len(track.Errors) != 1 || track.Errors[0].Code != webvtt.BadTimeStamp {
		t.Fatalf("expected one timestamp error, got %v", track.Errors)
	}
}

func TestOpenVTT(t *testing.T) {
	content := `WEBVTT

REGION
id:fred width:40% lines:3 regionanchor:0%,100% viewportanchor:10%,90% scroll:up

STYLE
::cue { color: yellow }

intro
00:00:01.000 --> 00:00:04.000 region:fred line:0 align:start
<v Fred>Hi</v>

00:00:05.000 --> 00:00:06.000 line:oops
broken settings are ignored
`
	track, err := Open(writeTemp(t, "test.vtt", content), OpenOptions{ChunkSize: 7})
	if err != nil {
		t.Fatalf("failed to open VTT file: %v", err)
	}

	if len(track.Regions) != 1 || track.Regions[0].ID != "fred" {
		t.Fatalf("expected region fred, got %+v", track.Regions)
	}
	if len(track.Styles) != 1 || !strings.Contains(track.Styles[0], "yellow") {
		t.Fatalf("expected the style block, got %q", track.Styles)
	}
	if len(track.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(track.Cues))
	}

	first := track.Cues[0]
	if first.ID != "intro" || first.Region != track.Regions[0] || first.Align != webvtt.AlignStart {
		t.Errorf("unexpected first cue %+v", first)
	}
	if first.Line.Auto || first.Line.Value != 0 {
		t.Errorf("expected line 0, got %v", first.Line)
	}
	if !track.Cues[1].Line.Auto {
		t.Errorf("expected invalid line to stay auto, got %v", track.Cues[1].Line)
	}
}

func TestOpenWithEncoding(t *testing.T) {
	// "Café" in windows-1252
	content := []byte("WEBVTT\n\n00:01.000 --> 00:02.000\nCaf\xe9\n")
	path := filepath.Join(t.TempDir(), "latin.vtt")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	track, err := Open(path, OpenOptions{Encoding: "windows-1252"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(track.Cues) != 1 || track.Cues[0].Text != "Café" {
		t.Fatalf("expected decoded text, got %+v", track.Cues)
	}

	if _, err := Open(path, OpenOptions{Encoding: "klingon"}); err == nil {
		t.Error("expected unknown encoding to fail")
	}
}

func TestOpenUnsupported(t *testing.T) {
	tests := []string{"test.ass", "test.txt", "noext"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Open(writeTemp(t, name, "x"), OpenOptions{}); err == nil {
				t.Errorf("expected %s to be rejected", name)
			}
		})
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.vtt"), OpenOptions{}); err == nil {
		t.Error("expected missing file to fail")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"srt", FormatSRT, false},
		{".VTT", FormatVTT, false},
		{"webvtt", FormatVTT, false},
		{" ssa ", FormatASS, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if GetFormatFromExtension("x.unknown") != FormatSRT || GetExtensionForFormat(FormatASS) != ".ass" {
		t.Error("unexpected extension mapping")
	}
}

func TestVTTWriterRoundTrip(t *testing.T) {
	src := `WEBVTT

REGION
id:fred width:40% lines:3 regionanchor:0%,100% viewportanchor:10%,90% scroll:up

STYLE
::cue { color: yellow }

intro
00:00:01.000 --> 00:00:04.000 region:fred vertical:rl line:-2,end position:30%,end size:50% align:start
first line
second line

00:01:05.250 --> 00:01:06.000 line:25%
plain
`
	track, err := Open(writeTemp(t, "in.vtt", src), OpenOptions{})
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "out", "copy.vtt")
	w, err := NewWriter(FormatVTT)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(track, out); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	again, err := Open(out, OpenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Errors) != 0 {
		t.Fatalf("rewritten file has errors: %v", again.Errors)
	}
	if len(again.Cues) != len(track.Cues) || len(again.Regions) != 1 || len(again.Styles) != 1 {
		t.Fatalf("rewritten file lost blocks: %+v", again)
	}
	if *again.Regions[0] != *track.Regions[0] {
		t.Errorf("region changed: %+v vs %+v", again.Regions[0], track.Regions[0])
	}

	for i := range track.Cues {
		a, b := track.Cues[i], again.Cues[i]
		if a.ID != b.ID || a.StartTime != b.StartTime || a.EndTime != b.EndTime || a.Text != b.Text {
			t.Errorf("cue %d changed: %+v vs %+v", i, a, b)
		}
		if a.Vertical != b.Vertical || a.Line != b.Line || a.LineAlign != b.LineAlign ||
			a.SnapToLines != b.SnapToLines || a.Position != b.Position ||
			a.PositionAlign != b.PositionAlign || a.Size != b.Size || a.Align != b.Align {
			t.Errorf("cue %d settings changed: %+v vs %+v", i, a, b)
		}
	}
	if again.Cues[0].Region == nil || again.Cues[0].Region.ID != "fred" {
		t.Error("expected the cue to keep its region")
	}
}

func TestSRTAndASSWriters(t *testing.T) {
	cue := webvtt.NewCue(3661.5, 3662.25, "<v Bob><i>Hi</i> &amp; <c.red>bye</c></v>\nnext")
	top := webvtt.NewCue(0, 1, "<b>top</b>")
	top.Line = webvtt.Number(0)
	track := &Track{Cues: []*webvtt.Cue{cue, top}}
	dir := t.TempDir()

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatSRT, []string{
			"1\n01:01:01,500 --> 01:01:02,250\n<i>Hi</i> & bye\nnext\n\n",
			"2\n00:00:00,000 --> 00:00:01,000\n<b>top</b>\n",
		}},
		{FormatASS, []string{
			"[Script Info]",
			`Dialogue: 0,1:01:01.50,1:01:02.25,Default,,0,0,0,,{\i1}Hi{\i0} & bye\Nnext`,
			`Dialogue: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,,{\an8}{\b1}top{\b0}`,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(tt.format)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(dir, "out"+GetExtensionForFormat(tt.format))
			if err := w.Write(track, path); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(data), want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, data)
				}
			}
		})
	}

	if _, err := NewWriter("docx"); err == nil {
		t.Error("expected unknown writer format to fail")
	}
}
