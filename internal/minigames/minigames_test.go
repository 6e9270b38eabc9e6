package minigames

import "testing"

func TestCaesarRoundTrip(t *testing.T) {
	enc := CaesarEncode(CipherPlaintext, CipherShift)
	if enc == CipherPlaintext {
		t.Fatal("encoding should change the text")
	}
	if got := CaesarDecode(enc, CipherShift); got != CipherPlaintext {
		t.Errorf("round trip failed: %q", got)
	}
}

func TestCaesarNonLettersUnchanged(t *testing.T) {
	if got := CaesarEncode("B, 404!", 13); got != "O, 404!" {
		t.Errorf("expected digits and punctuation untouched, got %q", got)
	}
}

func TestSolveCipher(t *testing.T) {
	if !SolveCipher(CipherShift) {
		t.Error("correct shift should solve the cipher")
	}
	if SolveCipher(CipherShift + 1) {
		t.Error("wrong shift must not solve the cipher")
	}
}

func TestBinaryGroupsDecodeToTarget(t *testing.T) {
	got, err := DecodeBinary(BinaryGroups())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != BinaryTarget {
		t.Errorf("expected %q, got %q", BinaryTarget, got)
	}
}

func TestDecodeBinaryRejectsBadOctets(t *testing.T) {
	if _, err := DecodeBinary([]string{"0101"}); err == nil {
		t.Error("short octet should fail")
	}
	if _, err := DecodeBinary([]string{"01012345"}); err == nil {
		t.Error("non-binary octet should fail")
	}
}

func TestCrackPassword(t *testing.T) {
	attempts, found := CrackPassword(Dictionary, TargetPassword)
	if !found {
		t.Fatal("target password must be in the dictionary")
	}
	if attempts != len(Dictionary) {
		t.Errorf("expected target as the last word (%d attempts), got %d", len(Dictionary), attempts)
	}

	if _, found := CrackPassword(Dictionary, "not-in-list"); found {
		t.Error("missing target should not be found")
	}
}

func TestValidatePortForward(t *testing.T) {
	if !ValidatePortForward(8080, 80) {
		t.Error("8080 -> 80 is the valid tunnel")
	}
	if ValidatePortForward(80, 8080) {
		t.Error("reversed tunnel must be rejected")
	}
	if ValidatePortForward(8080, 443) {
		t.Error("wrong remote port must be rejected")
	}
}

func TestObjectiveFor(t *testing.T) {
	cases := map[string]int{
		"cipher-decode":  7,
		"binary-puzzle":  8,
		"password-crack": 9,
		"port-forward":   9,
	}
	for game, want := range cases {
		got, ok := ObjectiveFor(game)
		if !ok || got != want {
			t.Errorf("ObjectiveFor(%q) = %d, %v; want %d", game, got, ok, want)
		}
	}
	if _, ok := ObjectiveFor("no-such-game"); ok {
		t.Error("unknown game should not map to an objective")
	}
}
