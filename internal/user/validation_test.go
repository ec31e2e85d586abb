package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "Secure*1234",
		},
		{
			name:     "valid with different special",
			password: `Pa55word"`,
		},
		{
			name:     "too short",
			password: "Se*1234",
			wantErr:  true,
		},
		{
			name:     "no uppercase",
			password: "secure*1234",
			wantErr:  true,
		},
		{
			name:     "no digit",
			password: "Secure*abcd",
			wantErr:  true,
		},
		{
			name:     "no special character",
			password: "Secure1234",
			wantErr:  true,
		},
		{
			name:     "no letter",
			password: "12345678!*",
			wantErr:  true,
		},
		{
			name:     "character outside allowed classes",
			password: "Secure*1234 ",
			wantErr:  true,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentialFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateUserRequest_Validate_Nickname(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantErr  bool
	}{
		{
			name:     "valid nickname",
			nickname: "john_doe-42",
		},
		{
			name:     "empty nickname is allowed",
			nickname: "",
		},
		{
			name:     "minimum length",
			nickname: "abc",
		},
		{
			name:     "maximum length",
			nickname: "a2345678901234567890",
		},
		{
			name:     "too short",
			nickname: "ab",
			wantErr:  true,
		},
		{
			name:     "too long",
			nickname: "a23456789012345678901",
			wantErr:  true,
		},
		{
			name:     "contains space",
			nickname: "john doe",
			wantErr:  true,
		},
		{
			name:     "contains symbol",
			nickname: "john.doe",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.Nickname = tt.nickname

			err := req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFieldFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateUserRequest_Validate_URLs(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		url     *string
		wantErr bool
	}{
		{
			name: "absent URL",
			url:  nil,
		},
		{
			name: "https URL",
			url:  strPtr("https://example.com/profile.jpg"),
		},
		{
			name: "http URL",
			url:  strPtr("http://example.com"),
		},
		{
			name:    "missing scheme",
			url:     strPtr("example.com/profile.jpg"),
			wantErr: true,
		},
		{
			name:    "ftp scheme",
			url:     strPtr("ftp://example.com/profile.jpg"),
			wantErr: true,
		},
		{
			name:    "whitespace in URL",
			url:     strPtr("https://example.com/pro file.jpg"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.ProfilePictureURL = tt.url

			err := req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFieldFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateUserRequest_Validate_Email(t *testing.T) {
	req := validCreateRequest()
	req.Email = "not-an-email"
	assert.ErrorIs(t, req.Validate(), ErrInvalidFieldFormat)

	req = validCreateRequest()
	req.Email = ""
	assert.ErrorIs(t, req.Validate(), ErrInvalidFieldFormat)
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("empty update is rejected", func(t *testing.T) {
		assert.ErrorIs(t, UpdateUserRequest{}.Validate(), ErrEmptyUpdate)
	})

	t.Run("update with only empty strings is rejected", func(t *testing.T) {
		req := UpdateUserRequest{FirstName: strPtr("")}
		assert.ErrorIs(t, req.Validate(), ErrEmptyUpdate)
	})

	t.Run("single field update passes", func(t *testing.T) {
		req := UpdateUserRequest{FirstName: strPtr("Jane")}
		assert.NoError(t, req.Validate())
	})

	t.Run("bad nickname rejected", func(t *testing.T) {
		req := UpdateUserRequest{Nickname: strPtr("x")}
		assert.ErrorIs(t, req.Validate(), ErrInvalidFieldFormat)
	})

	t.Run("bad URL rejected", func(t *testing.T) {
		req := UpdateUserRequest{GithubProfileURL: strPtr("not a url")}
		assert.ErrorIs(t, req.Validate(), ErrInvalidFieldFormat)
	})
}

func TestUpdateUserRequest_Fields(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	req := UpdateUserRequest{
		Email:     strPtr("Jane.Doe@Example.com"),
		FirstName: strPtr("Jane"),
		Bio:       strPtr("Updated bio"),
	}

	fields := req.Fields()
	assert.Len(t, fields, 3)
	assert.Equal(t, "jane.doe@example.com", fields["email"])
	assert.Equal(t, "Jane", fields["first_name"])
	assert.Equal(t, "Updated bio", fields["bio"])
	assert.NotContains(t, fields, "nickname")
}
