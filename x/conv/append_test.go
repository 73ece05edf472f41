package conv

import "testing"

func TestAppendUint(t *testing.T) {
	cases := []struct {
		n    uint
		want string
	}{
		{0, "0"},
		{7, "7"},
		{10, "10"},
		{1023, "1023"},
		{65535, "65535"},
		{4294967295, "4294967295"},
	}
	for _, c := range cases {
		got := string(AppendUint(nil, c.n))
		if got != c.want {
			t.Errorf("AppendUint(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestAppendUintExtends(t *testing.T) {
	dst := []byte("v=")
	dst = AppendUint(dst, 512)
	if string(dst) != "v=512" {
		t.Errorf("got %q, want %q", dst, "v=512")
	}
}

func TestAppendInt(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{-1, "-1"},
		{-1023, "-1023"},
		{42, "42"},
	}
	for _, c := range cases {
		got := string(AppendInt(nil, c.n))
		if got != c.want {
			t.Errorf("AppendInt(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestItoaUtoa(t *testing.T) {
	if Utoa(999) != "999" {
		t.Errorf("Utoa(999) = %q", Utoa(999))
	}
	if Itoa(-12) != "-12" {
		t.Errorf("Itoa(-12) = %q", Itoa(-12))
	}
}
