package markdown

import "testing"

func TestScanHeadings(t *testing.T) {
	content := "# Title\n\nintro\n\n## Setup ##\n```sh\n# not a heading\n```\n###No space\n####### seven\n### <em>Deep</em> Dive\n"
	headings := ScanHeadings(content)

	if len(headings) != 3 {
		t.Fatalf("headings = %d, want 3: %+v", len(headings), headings)
	}
	want := []Heading{
		{ID: "title", Text: "Title", Level: 1, Offset: 0},
		{ID: "setup", Text: "Setup", Level: 2, Offset: 16},
		{ID: "deep-dive", Text: "<em>Deep</em> Dive", Level: 3},
	}
	for i, w := range want {
		got := headings[i]
		if got.ID != w.ID || got.Text != w.Text || got.Level != w.Level {
			t.Errorf("heading[%d] = %+v, want %+v", i, got, w)
		}
	}
	if headings[1].Offset != 16 {
		t.Errorf("offset = %d, want 16", headings[1].Offset)
	}
	if content[headings[2].Offset:headings[2].Offset+3] != "###" {
		t.Errorf("offset %d does not point at the heading line", headings[2].Offset)
	}
}

func TestScanHeadingsEmpty(t *testing.T) {
	if got := ScanHeadings("no headings here\n"); len(got) != 0 {
		t.Errorf("ScanHeadings = %+v, want none", got)
	}
	if got := ScanHeadings(""); len(got) != 0 {
		t.Errorf("ScanHeadings(\"\") = %+v, want none", got)
	}
}
