// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"testing"
)

func TestFromGOOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos    string
		want    TargetOS
		wantErr bool
	}{
		{goos: "linux", want: OSLinux},
		{goos: "darwin", want: OSDarwin},
		{goos: "windows", want: OSWindows},
		{goos: "freebsd", wantErr: true},
		{goos: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()

			got, err := FromGOOS(tt.goos)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedOS) {
					t.Fatalf("FromGOOS(%q) error = %v, want ErrUnsupportedOS", tt.goos, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromGOOS(%q) unexpected error: %v", tt.goos, err)
			}
			if got != tt.want {
				t.Errorf("FromGOOS(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestTargetOSLower(t *testing.T) {
	t.Parallel()

	if got := OSDarwin.Lower(); got != "darwin" {
		t.Errorf("OSDarwin.Lower() = %q, want darwin", got)
	}
	if !OSWindows.IsWindows() || OSLinux.IsWindows() {
		t.Error("IsWindows() reported the wrong value")
	}
	if err := TargetOS("Plan9").Validate(); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("Validate() = %v, want ErrUnsupportedOS", err)
	}
}

func TestStaticHost(t *testing.T) {
	t.Parallel()

	h := StaticHost{Bits: 64, MachineName: "x86_64"}
	if h.PointerBits() != 64 {
		t.Errorf("PointerBits() = %d, want 64", h.PointerBits())
	}
	m, err := h.Machine()
	if err != nil || m != "x86_64" {
		t.Errorf("Machine() = %q, %v; want x86_64, nil", m, err)
	}
}
