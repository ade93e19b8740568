package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValidator_ValidateEmail(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{
			name:  "valid email",
			email: "alice@example.com",
		},
		{
			name:  "mixed case kept",
			email: "Alice@Example.com",
		},
		{
			name:        "empty",
			email:       "",
			wantErr:     true,
			expectedErr: "email is required",
		},
		{
			name:        "no at sign",
			email:       "alice.example.com",
			wantErr:     true,
			expectedErr: "is not a valid address",
		},
		{
			name:        "display name",
			email:       "Alice <alice@example.com>",
			wantErr:     true,
			expectedErr: "is not a valid address",
		},
		{
			name:        "surrounding whitespace",
			email:       " alice@example.com",
			wantErr:     true,
			expectedErr: "surrounding whitespace",
		},
		{
			name:        "too long",
			email:       strings.Repeat("a", 250) + "@x.io",
			wantErr:     true,
			expectedErr: "at most 254 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		validator   *PasswordValidator
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:      "default accepts short password",
			validator: NewPasswordValidator(),
			password:  "pw123",
		},
		{
			name:        "default rejects empty",
			validator:   NewPasswordValidator(),
			password:    "",
			wantErr:     true,
			expectedErr: "at least 1 characters",
		},
		{
			name:        "default rejects over bcrypt limit",
			validator:   NewPasswordValidator(),
			password:    strings.Repeat("a", 73),
			wantErr:     true,
			expectedErr: "at most 72 bytes",
		},
		{
			name:        "strict too short",
			validator:   NewStrictPasswordValidator(),
			password:    "Abc123!",
			wantErr:     true,
			expectedErr: "at least 8 characters",
		},
		{
			name:        "strict no uppercase",
			validator:   NewStrictPasswordValidator(),
			password:    "abc123!@",
			wantErr:     true,
			expectedErr: "uppercase letter",
		},
		{
			name:        "strict no lowercase",
			validator:   NewStrictPasswordValidator(),
			password:    "ABC123!@",
			wantErr:     true,
			expectedErr: "lowercase letter",
		},
		{
			name:        "strict no digit",
			validator:   NewStrictPasswordValidator(),
			password:    "Abcdef!@",
			wantErr:     true,
			expectedErr: "one digit",
		},
		{
			name:        "strict no special char",
			validator:   NewStrictPasswordValidator(),
			password:    "Abcdef12",
			wantErr:     true,
			expectedErr: "special character",
		},
		{
			name:      "strict valid",
			validator: NewStrictPasswordValidator(),
			password:  "P@ssw0rd123!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator.ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidateRegister(t *testing.T) {
	validator := NewPasswordValidator()

	err := validator.ValidateRegister("alice", "pw123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email validation failed")

	err = validator.ValidateRegister("alice@example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password validation failed")

	assert.NoError(t, validator.ValidateRegister("alice@example.com", "pw123"))
}

func TestNewStrictPasswordValidator(t *testing.T) {
	v := NewStrictPasswordValidator()
	assert.True(t, v.requireSpecialChar)
	assert.True(t, v.requireDigit)
	assert.True(t, v.requireUpper)
	assert.True(t, v.requireLower)
	assert.Equal(t, StrictPasswordLen, v.minLength)
}
