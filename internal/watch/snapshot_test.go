package watch

import (
	"reflect"
	"testing"
	"time"
)

func TestSnapshot(t *testing.T) {
	fp1 := Fingerprint{ModTime: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Size: 3, Hash: 96354}
	fp2 := Fingerprint{ModTime: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC), Size: 2, Hash: 3329}

	t.Run("get on empty snapshot", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshot()
		if _, ok := s.Get("a.txt"); ok {
			t.Error("Get() on empty snapshot reported a file")
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("put then get", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshot()
		s.Put("a.txt", fp1)
		got, ok := s.Get("a.txt")
		if !ok {
			t.Fatal("Get() did not find a.txt")
		}
		if !got.Equal(fp1) {
			t.Errorf("Get() = %+v, want %+v", got, fp1)
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshot()
		s.Put("a.txt", fp1)
		s.Put("a.txt", fp2)
		got, _ := s.Get("a.txt")
		if !got.Equal(fp2) {
			t.Errorf("Get() = %+v, want %+v", got, fp2)
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshot()
		s.Put("a.txt", fp1)
		s.Remove("a.txt")
		if _, ok := s.Get("a.txt"); ok {
			t.Error("Get() found a.txt after Remove()")
		}
		s.Remove("never-there.txt") // must not panic
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()
		s := NewSnapshot()
		s.Put("zeta.txt", fp1)
		s.Put("alpha.txt", fp1)
		s.Put("mid.txt", fp2)
		want := []string{"alpha.txt", "mid.txt", "zeta.txt"}
		if got := s.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
	})
}
