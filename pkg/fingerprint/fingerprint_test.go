package fingerprint

import "testing"

func TestFingerprint_NormalizesWhitespaceAndCase(t *testing.T) {
	variants := []string{
		"explica la derivada de x^2",
		"  Explica la Derivada de x^2  ",
		"EXPLICA LA DERIVADA DE X^2",
		"\n\texplica la derivada de x^2\n",
	}

	// sha256("explica la derivada de x^2")
	want := "582b370fc956f677b27d5d0a85a09094b41923dbaa668b030d49fd482bd475ed"

	for _, v := range variants {
		if got := Fingerprint(v); got != want {
			t.Errorf("Fingerprint(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestFingerprint_DistinctContent(t *testing.T) {
	if Fingerprint("hola mundo") == Fingerprint("adios mundo") {
		t.Fatal("distinct content produced the same fingerprint")
	}
	// sha256("hola mundo")
	want := "0b894166d3336435c800bea36ff21b29eaa801a52f584c006c49289a0dcf6e2f"
	if got := Fingerprint("Hola Mundo "); got != want {
		t.Errorf("Fingerprint(\"Hola Mundo \") = %q, want %q", got, want)
	}
}

func TestFingerprint_InternalWhitespacePreserved(t *testing.T) {
	// Solo se recorta al inicio y al final; los espacios internos cuentan.
	if Fingerprint("a  b") == Fingerprint("a b") {
		t.Fatal("internal whitespace should change the fingerprint")
	}
}
