package iban

// Modulus is the ISO 7064 MOD 97-10 modulus used by IBAN check digits.
const Modulus = 97

// Mod97 computes the IBAN checksum remainder of an upper-case alphanumeric
// string.
//
// The first four characters (country code and check digits) are moved to the
// end, letters are expanded to their two-digit value (A=10 ... Z=35) and the
// resulting numeral is reduced modulo 97 one digit at a time, so the full
// numeral is never materialised. ok is false when s is shorter than four
// characters or contains anything other than A-Z and 0-9.
func Mod97(s string) (remainder int, ok bool) {
	if len(s) < 4 {
		return 0, false
	}

	rearranged := s[4:] + s[:4]
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			remainder = (remainder*10 + int(c-'0')) % Modulus
		case c >= 'A' && c <= 'Z':
			v := int(c-'A') + 10
			remainder = (remainder*10 + v/10) % Modulus
			remainder = (remainder*10 + v%10) % Modulus
		default:
			return 0, false
		}
	}

	return remainder, true
}

// HasValidChecksum reports whether the MOD 97 remainder of s equals 1.
func HasValidChecksum(s string) bool {
	remainder, ok := Mod97(s)
	return ok && remainder == 1
}
