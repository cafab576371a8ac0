package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_Docx(t *testing.T) {
	data := buildDocx(t, "Backend Engineer", "Experience with React and SQL")
	text, err := ExtractTextFromBytes(context.Background(), data, mimeDOCX, "jd.docx")
	if err != nil {
		t.Fatalf("ExtractTextFromBytes: %v", err)
	}
	if text != "Backend Engineer\nExperience with React and SQL" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	data := buildDocx(t, "Kubernetes")
	if _, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "upload"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestExtractTextFromBytes_OctetStreamUsesExtension(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("Looking for Go and Docker"), mimeOctet, "jd.txt")
	if err != nil {
		t.Fatalf("ExtractTextFromBytes: %v", err)
	}
	if text != "Looking for Go and Docker" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_BrokenPDF(t *testing.T) {
	if _, err := ExtractTextFromBytes(context.Background(), []byte("not a pdf"), mimePDF, "jd.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestJobDescriptionTidiesText(t *testing.T) {
	raw := "Role: SDE  \r\n\r\n\r\n\r\nSkills: DSA, SQL\t\n"
	text, err := JobDescription(context.Background(), strings.NewReader(raw), "text/plain; charset=utf-8", "jd.txt")
	if err != nil {
		t.Fatalf("JobDescription: %v", err)
	}
	if text != "Role: SDE\n\nSkills: DSA, SQL" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestJobDescriptionErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := JobDescription(ctx, strings.NewReader("  \n\n "), mimeText, "jd.txt"); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	big := bytes.Repeat([]byte("a"), MaxUploadBytes+1)
	if _, err := JobDescription(ctx, bytes.NewReader(big), mimeText, "jd.txt"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := JobDescription(ctx, strings.NewReader("GIF89a"), "image/gif", "jd.gif"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
