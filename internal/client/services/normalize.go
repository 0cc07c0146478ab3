package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
)

// Alias lists, in priority order. The first key carrying a usable value
// wins.
var (
	tokenKeys = []string{"token", "accessToken", "access_token", "jwt", "idToken"}
	userKeys  = []string{"user", "profile"}

	idKeys      = []string{"id", "_id", "userId", "user_id", "uid", "sub"}
	nameKeys    = []string{"name", "fullName", "full_name", "username", "displayName", "display_name"}
	emailKeys   = []string{"email", "mail", "emailAddress", "email_address"}
	dobKeys     = []string{"date_of_birth", "dob", "dateOfBirth"}
	phoneKeys   = []string{"phone_number", "phone", "phoneNumber"}
	aadhaarKeys = []string{"aadhaar_number", "aadhar_number", "aadhaar", "aadhar", "aadhaarNumber"}
)

// authResponse is what normalizeAuthResponse extracts. User is nil when
// the response carried no recognizable user.
type authResponse struct {
	Token string
	User  *models.UserProfile
}

// normalizeAuthResponse extracts a token and a user from a login or signup
// response whose shape varies between backends.
func normalizeAuthResponse(raw any) authResponse {
	obj, _ := raw.(map[string]any)
	if obj == nil {
		return authResponse{}
	}
	data, _ := obj["data"].(map[string]any)

	var res authResponse
	res.Token = firstString(obj, tokenKeys)
	if res.Token == "" && data != nil {
		res.Token = firstString(data, tokenKeys)
	}

	if u := findUser(obj, data); u != nil {
		p := profileFromMap(u).WithDefaults()
		res.User = &p
		return res
	}

	name, email := stringOf(obj["name"]), stringOf(obj["email"])
	if name != "" && email != "" {
		p := models.UserProfile{ID: firstString(obj, idKeys), Name: name, Email: email}.WithDefaults()
		res.User = &p
	}
	return res
}

// extractProfile finds a profile in a GET /profile or POST /profile
// response. The result is partial: fields the response omits stay empty so
// that Merge keeps the existing values.
func extractProfile(raw any) (models.UserProfile, bool) {
	obj, _ := raw.(map[string]any)
	if obj == nil {
		return models.UserProfile{}, false
	}
	data, _ := obj["data"].(map[string]any)

	u := findUser(obj, data)
	if u == nil && looksLikeUser(obj) {
		u = obj
	}
	if u == nil {
		return models.UserProfile{}, false
	}
	p := profileFromMap(u)
	return p, !p.IsZero()
}

func findUser(obj, data map[string]any) map[string]any {
	for _, k := range userKeys {
		if m, ok := obj[k].(map[string]any); ok {
			return m
		}
	}
	if data == nil {
		return nil
	}
	for _, k := range userKeys {
		if m, ok := data[k].(map[string]any); ok {
			return m
		}
	}
	if looksLikeUser(data) {
		return data
	}
	return nil
}

func looksLikeUser(m map[string]any) bool {
	return firstString(m, emailKeys) != "" || firstString(m, idKeys) != ""
}

func profileFromMap(m map[string]any) models.UserProfile {
	p := models.UserProfile{
		ID:            firstString(m, idKeys),
		Name:          firstString(m, nameKeys),
		Email:         firstString(m, emailKeys),
		DateOfBirth:   firstString(m, dobKeys),
		Gender:        stringOf(m["gender"]),
		PhoneNumber:   firstString(m, phoneKeys),
		AadhaarNumber: firstString(m, aadhaarKeys),
	}
	if age, ok := intOf(m["age"]); ok && age > 0 {
		p.Age = &age
	}
	return p
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s := stringOf(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// stringOf renders strings and numbers; ids often arrive as numbers.
func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func intOf(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}

// tokenClaims reads subject and expiry from a JWT without verifying it;
// the client holds no key and only uses them for display and placeholders.
func tokenClaims(token string) (subject string, expiry time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, false
	}
	subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	return subject, expiry, true
}
