package s3

import (
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "reports/abc/full.txt", want: "reports/abc/full.txt"},
		{name: "simple prefix", prefix: "prep", key: "reports/abc/full.txt", want: "prep/reports/abc/full.txt"},
		{name: "prefix trailing slash", prefix: "prep/", key: "reports/abc/full.txt", want: "prep/reports/abc/full.txt"},
		{name: "prefix and key slashes", prefix: "/prep/", key: "/reports/abc/full.txt", want: "prep/reports/abc/full.txt"},
		{name: "empty key", prefix: "prep", key: "", want: "prep"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPutInputEncryption(t *testing.T) {
	plain := &Store{bucket: "b"}
	input := plain.putInput("k", "", strings.NewReader("x"))
	if input.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 without a KMS key, got %s", input.ServerSideEncryption)
	}
	if aws.ToString(input.ContentType) != "application/octet-stream" {
		t.Fatalf("expected default content type, got %s", aws.ToString(input.ContentType))
	}

	kms := &Store{bucket: "b", kmsKeyID: "key-1"}
	input = kms.putInput("k", "text/plain; charset=utf-8", strings.NewReader("x"))
	if input.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(input.SSEKMSKeyId) != "key-1" {
		t.Fatalf("expected KMS encryption with key-1, got %s %s", input.ServerSideEncryption, aws.ToString(input.SSEKMSKeyId))
	}
}

func TestCountingReader(t *testing.T) {
	c := &countingReader{r: strings.NewReader("hello world")}
	if _, err := io.ReadAll(c); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if c.n != 11 {
		t.Fatalf("expected 11 bytes counted, got %d", c.n)
	}
}
