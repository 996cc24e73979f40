package markdown

import "testing"

func TestExtractHeadings(t *testing.T) {
	input := `# Heading 1

Some text.

## Heading *2*

### Heading 3 ###

Setext
------
`
	headings := ExtractHeadings([]byte(input))

	if len(headings) != 4 {
		t.Fatalf("got %d headings, want 4: %+v", len(headings), headings)
	}

	tests := []struct {
		level int
		text  string
		line  int
	}{
		{1, "Heading 1", 1},
		{2, "Heading 2", 5},
		{3, "Heading 3", 7},
		{2, "Setext", 9},
	}

	for i, tt := range tests {
		if headings[i].Level != tt.level {
			t.Errorf("[%d] level: got %d, want %d", i, headings[i].Level, tt.level)
		}
		if headings[i].Text != tt.text {
			t.Errorf("[%d] text: got %q, want %q", i, headings[i].Text, tt.text)
		}
		if headings[i].Line != tt.line {
			t.Errorf("[%d] line: got %d, want %d", i, headings[i].Line, tt.line)
		}
	}
}

func TestExtractHeadings_SkipsCodeAndEmpty(t *testing.T) {
	input := "#\n\n```\n# not a heading\n```\n\n## Real\n"
	headings := ExtractHeadings([]byte(input))
	if len(headings) != 1 || headings[0].Text != "Real" {
		t.Errorf("got %+v", headings)
	}
}

func TestTitle(t *testing.T) {
	headings := []Heading{{Level: 2, Text: "Intro"}, {Level: 1, Text: "Main"}, {Level: 1, Text: "Other"}}
	if got := Title(headings); got != "Main" {
		t.Errorf("Title = %q, want %q", got, "Main")
	}
	if got := Title(nil); got != "" {
		t.Errorf("Title(nil) = %q, want empty", got)
	}
}
