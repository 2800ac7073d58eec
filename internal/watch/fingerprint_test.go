package watch

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestComputeFingerprint(t *testing.T) {
	t.Run("computes content hash and stat fields", func(t *testing.T) {
		t.Parallel()
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "/watch/a.txt", []byte("abc"), 0644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}
		mt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		if err := fsys.Chtimes("/watch/a.txt", mt, mt); err != nil {
			t.Fatalf("setting mtime: %v", err)
		}

		fp, err := ComputeFingerprint(fsys, "/watch/a.txt")
		if err != nil {
			t.Fatalf("ComputeFingerprint() error = %v", err)
		}
		if fp.Hash != 96354 {
			t.Errorf("Hash = %d, want 96354", fp.Hash)
		}
		if fp.Size != 3 {
			t.Errorf("Size = %d, want 3", fp.Size)
		}
		if !fp.ModTime.Equal(mt) {
			t.Errorf("ModTime = %v, want %v", fp.ModTime, mt)
		}
	})

	t.Run("missing file returns AccessError", func(t *testing.T) {
		t.Parallel()
		fsys := afero.NewMemMapFs()

		_, err := ComputeFingerprint(fsys, "/watch/gone.txt")
		var accessErr *AccessError
		if !errors.As(err, &accessErr) {
			t.Fatalf("ComputeFingerprint() error = %v, want *AccessError", err)
		}
		if accessErr.Name != "/watch/gone.txt" {
			t.Errorf("Name = %q, want %q", accessErr.Name, "/watch/gone.txt")
		}
	})

	t.Run("directory returns AccessError", func(t *testing.T) {
		t.Parallel()
		fsys := afero.NewMemMapFs()
		if err := fsys.MkdirAll("/watch/sub", 0755); err != nil {
			t.Fatalf("creating directory: %v", err)
		}

		_, err := ComputeFingerprint(fsys, "/watch/sub")
		var accessErr *AccessError
		if !errors.As(err, &accessErr) {
			t.Fatalf("ComputeFingerprint() error = %v, want *AccessError", err)
		}
	})
}

func TestFingerprint_Equal(t *testing.T) {
	mt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	base := Fingerprint{ModTime: mt, Size: 3, Hash: 96354}

	tests := []struct {
		name  string
		other Fingerprint
		want  bool
	}{
		{
			name:  "identical",
			other: Fingerprint{ModTime: mt, Size: 3, Hash: 96354},
			want:  true,
		},
		{
			name:  "same instant different location",
			other: Fingerprint{ModTime: mt.In(time.FixedZone("UTC+2", 2*3600)), Size: 3, Hash: 96354},
			want:  true,
		},
		{
			name:  "different mtime",
			other: Fingerprint{ModTime: mt.Add(time.Second), Size: 3, Hash: 96354},
			want:  false,
		},
		{
			name:  "different size",
			other: Fingerprint{ModTime: mt, Size: 4, Hash: 96354},
			want:  false,
		},
		{
			name:  "different hash",
			other: Fingerprint{ModTime: mt, Size: 3, Hash: 3329},
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt // pin per iteration for the parallel subtest (go 1.21 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
