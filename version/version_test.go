package version

import (
	"strings"
	"testing"
)

func TestCurrent(t *testing.T) {
	if s := Current().String(); s != "0.1.0" {
		t.Errorf("unexpected version: %s", s)
	}
}

func TestPrintLicenses(t *testing.T) {
	var buffer strings.Builder
	PrintLicenses(&buffer)

	for _, license := range Licenses {
		if !strings.Contains(buffer.String(), license.ModuleName+":\n  "+license.LicenseName+"\n") {
			t.Errorf("license of %s is missing", license.ModuleName)
		}
	}
}
