// Package minigames holds the self-validating puzzle logic behind the
// scenario's hacking tools. Each puzzle is a pure function; presentation and
// timing live in the client. The one cross-cutting contract is that every
// game reports a single 0..100 score which maps to one scenario objective.
package minigames

import (
	"fmt"
	"strconv"
	"strings"
)

// CipherShift is the shift the intercepted message was encoded with (ROT13).
const CipherShift = 13

// CipherPlaintext is the decoded intercepted message.
const CipherPlaintext = "THE SECRET VAULT IS IN BUILDING B, ROOM 404"

// CaesarEncode shifts letters forward by shift, leaving everything else as is.
func CaesarEncode(text string, shift int) string {
	return caesarShift(text, shift)
}

// CaesarDecode shifts letters back by shift.
func CaesarDecode(text string, shift int) string {
	return caesarShift(text, -shift)
}

func caesarShift(text string, shift int) string {
	shift = ((shift % 26) + 26) % 26
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune('A' + (r-'A'+rune(shift))%26)
		case r >= 'a' && r <= 'z':
			b.WriteRune('a' + (r-'a'+rune(shift))%26)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CipherCiphertext returns the message as presented to the player.
func CipherCiphertext() string {
	return CaesarEncode(CipherPlaintext, CipherShift)
}

// SolveCipher checks a decode attempt at the given shift.
func SolveCipher(shift int) bool {
	return CaesarDecode(CipherCiphertext(), shift) == CipherPlaintext
}

// BinaryTarget is the word hidden in the binary puzzle.
const BinaryTarget = "SECURE"

// BinaryGroups returns the puzzle input: one 8-bit octet per letter.
func BinaryGroups() []string {
	groups := make([]string, 0, len(BinaryTarget))
	for _, r := range BinaryTarget {
		groups = append(groups, fmt.Sprintf("%08b", r))
	}
	return groups
}

// DecodeBinary converts 8-bit octets to their ASCII string.
func DecodeBinary(groups []string) (string, error) {
	var b strings.Builder
	for _, g := range groups {
		if len(g) != 8 {
			return "", fmt.Errorf("octet %q: want 8 bits, got %d", g, len(g))
		}
		n, err := strconv.ParseUint(g, 2, 8)
		if err != nil {
			return "", fmt.Errorf("octet %q: %w", g, err)
		}
		b.WriteByte(byte(n))
	}
	return b.String(), nil
}

// TargetPassword is what the dictionary attack eventually finds.
const TargetPassword = "Admin2025!"

// Dictionary is the fixed wordlist the password cracker walks through.
var Dictionary = []string{
	"password", "admin", "123456", "qwerty", "letmein",
	"welcome", "monkey", "dragon", "master", "Admin2025!",
}

// CrackPassword simulates the dictionary attack: it returns how many
// attempts were needed and whether the target was in the wordlist.
func CrackPassword(dictionary []string, target string) (attempts int, found bool) {
	for i, word := range dictionary {
		if word == target {
			return i + 1, true
		}
	}
	return len(dictionary), false
}

// Port-forward puzzle: the firewall filters port 8080 and the web service
// listens on 80, so the only valid tunnel maps local 8080 to remote 80.
const (
	ForwardLocalPort  = 8080
	ForwardRemotePort = 80
)

// ValidatePortForward checks a tunnel configuration against the puzzle rule.
func ValidatePortForward(localPort, remotePort int) bool {
	return localPort == ForwardLocalPort && remotePort == ForwardRemotePort
}

// scenarioObjectives maps each scenario mini-game to the objective its
// completion callback triggers.
var scenarioObjectives = map[string]int{
	"cipher-decode":  7,
	"binary-puzzle":  8,
	"password-crack": 9,
	// The port-forward tool is an alternative route to the same step as
	// the password cracker.
	"port-forward": 9,
}

// ObjectiveFor returns the scenario objective a mini-game completes.
func ObjectiveFor(gameID string) (int, bool) {
	id, ok := scenarioObjectives[gameID]
	return id, ok
}
