package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

func user(id, name, email string) *models.UserProfile {
	return &models.UserProfile{ID: id, Name: name, Email: email}
}

func TestNormalizeAuthResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want authResponse
	}{
		{
			name: "aliases under profile",
			raw: map[string]any{
				"accessToken": "t",
				"profile":     map[string]any{"userId": "5", "fullName": "Bob", "mail": "b@x.com"},
			},
			want: authResponse{Token: "t", User: user("5", "Bob", "b@x.com")},
		},
		{
			name: "first token alias wins",
			raw:  map[string]any{"idToken": "late", "token": "early", "jwt": "mid"},
			want: authResponse{Token: "early"},
		},
		{
			name: "empty token alias skipped",
			raw:  map[string]any{"token": "", "access_token": "a"},
			want: authResponse{Token: "a"},
		},
		{
			name: "nested under data",
			raw: map[string]any{"data": map[string]any{
				"token": "d",
				"user":  map[string]any{"_id": 12, "username": "zed", "email_address": "z@x.com"},
			}},
			want: authResponse{Token: "d", User: user("12", "zed", "z@x.com")},
		},
		{
			name: "data itself is the user",
			raw: map[string]any{
				"jwt":  "j",
				"data": map[string]any{"uid": "u9", "displayName": "Dee", "email": "d@x.com"},
			},
			want: authResponse{Token: "j", User: user("u9", "Dee", "d@x.com")},
		},
		{
			name: "synthesized from top-level name and email",
			raw:  map[string]any{"token": "t", "name": "Top", "email": "top@x.com"},
			want: authResponse{Token: "t", User: user(models.DefaultUserID, "Top", "top@x.com")},
		},
		{
			name: "defaults for missing fields",
			raw:  map[string]any{"token": "t", "user": map[string]any{"email": "e@x.com"}},
			want: authResponse{Token: "t", User: user(models.DefaultUserID, models.DefaultUserName, "e@x.com")},
		},
		{
			name: "no user when only name is present",
			raw:  map[string]any{"token": "t", "name": "Top"},
			want: authResponse{Token: "t"},
		},
		{
			name: "not an object",
			raw:  "plain text",
			want: authResponse{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeAuthResponse(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("normalizeAuthResponse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeAuthResponse_OptionalFields(t *testing.T) {
	got := normalizeAuthResponse(map[string]any{
		"token": "t",
		"user": map[string]any{
			"id": "1", "name": "A", "email": "a@x.com",
			"age": "41", "dateOfBirth": "1984-03-04", "gender": "f",
			"phoneNumber": "555", "aadhar": "999988887777",
		},
	})
	require.NotNil(t, got.User)
	require.NotNil(t, got.User.Age)
	assert.Equal(t, 41, *got.User.Age)
	assert.Equal(t, "1984-03-04", got.User.DateOfBirth)
	assert.Equal(t, "f", got.User.Gender)
	assert.Equal(t, "555", got.User.PhoneNumber)
	assert.Equal(t, "999988887777", got.User.AadhaarNumber)
}

func TestExtractProfile(t *testing.T) {
	p, ok := extractProfile(map[string]any{"phone": "1"})
	assert.False(t, ok, "object without id or email is not a profile")
	assert.True(t, p.IsZero())

	p, ok = extractProfile(map[string]any{"id": "7", "gender": "m"})
	require.True(t, ok)
	assert.Equal(t, models.UserProfile{ID: "7", Gender: "m"}, p, "no defaults on partial profiles")

	_, ok = extractProfile(nil)
	assert.False(t, ok)
}

func TestTokenClaims(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	sub, gotExp, ok := tokenClaims(signedToken(t, "s-1", exp))
	require.True(t, ok)
	assert.Equal(t, "s-1", sub)
	assert.True(t, exp.Equal(gotExp))

	_, _, ok = tokenClaims("dev-token")
	assert.False(t, ok)
}
