package auth

// CredentialHelper exposes password hashing and the registration policies
// to other packages without creating an import cycle with internal/user.
type CredentialHelper struct{}

func (CredentialHelper) Hash(password string) (string, error) {
	return HashPassword(password)
}

func (CredentialHelper) ValidatePassword(password string) error {
	return ValidatePassword(password)
}

func (CredentialHelper) ValidatePhone(phone string) error {
	return ValidatePhone(phone)
}
