package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "jd.pdf", want: "jd.pdf"},
		{in: " team/jd.docx ", want: "team_jd.docx"},
		{in: `c:\jd.txt`, want: "c:_jd.txt"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Amazon":               "amazon",
		"SDE 1 / Backend":      "sde-1-backend",
		"  --Zoho Corp.-- ":    "zoho-corp",
		"":                     "",
		"Node.js & React Lead": "node-js-react-lead",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
