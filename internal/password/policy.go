package password

// IsStrong reports whether a password satisfies the registration policy:
// at least 8 characters, alphanumeric only, containing at least one
// lowercase letter, one uppercase letter and one digit.
func IsStrong(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return lower && upper && digit
}
