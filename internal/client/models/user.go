// Package models defines the records exchanged with the trip-planning backend.
package models

// Placeholder values for required profile fields the backend omitted.
const (
	DefaultUserID   = "unknown"
	DefaultUserName = "User"
)

// UserProfile is the canonical user record kept in the session.
//
// ID, Name and Email are always set (see WithDefaults). The remaining fields
// are optional: an empty string or nil Age means "unknown".
type UserProfile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Age           *int   `json:"age,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
}

// WithDefaults returns a copy with placeholder id and name filled in.
func (u UserProfile) WithDefaults() UserProfile {
	if u.ID == "" {
		u.ID = DefaultUserID
	}
	if u.Name == "" {
		u.Name = DefaultUserName
	}
	return u
}

// Merge returns u overlaid with every field other actually carries.
// Fields other leaves empty keep u's value.
func (u UserProfile) Merge(other UserProfile) UserProfile {
	if other.ID != "" {
		u.ID = other.ID
	}
	if other.Name != "" {
		u.Name = other.Name
	}
	if other.Email != "" {
		u.Email = other.Email
	}
	if other.Age != nil {
		age := *other.Age
		u.Age = &age
	}
	if other.DateOfBirth != "" {
		u.DateOfBirth = other.DateOfBirth
	}
	if other.Gender != "" {
		u.Gender = other.Gender
	}
	if other.PhoneNumber != "" {
		u.PhoneNumber = other.PhoneNumber
	}
	if other.AadhaarNumber != "" {
		u.AadhaarNumber = other.AadhaarNumber
	}
	return u
}

// IsZero reports whether no field is set.
func (u UserProfile) IsZero() bool {
	return u.ID == "" && u.Name == "" && u.Email == "" && u.Age == nil &&
		u.DateOfBirth == "" && u.Gender == "" && u.PhoneNumber == "" && u.AadhaarNumber == ""
}

// Credentials are sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Confirm is checked locally on signup and never sent.
	Confirm string `json:"-"`
}

// ProfileDetails is the optional profile collected during signup and sent
// to POST /profile.
type ProfileDetails struct {
	Name          string `json:"name,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Age           int    `json:"age,omitempty"`
}

// Profile converts the details into a partial UserProfile for merging.
func (d ProfileDetails) Profile() UserProfile {
	p := UserProfile{
		Name:          d.Name,
		PhoneNumber:   d.PhoneNumber,
		AadhaarNumber: d.AadhaarNumber,
		DateOfBirth:   d.DateOfBirth,
		Gender:        d.Gender,
	}
	if d.Age > 0 {
		age := d.Age
		p.Age = &age
	}
	return p
}

// SignupRequest is the body of POST /auth/signup. The optional profile
// fields are repeated here for backends that take them at signup.
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Aadhar   string `json:"aadhar,omitempty"`
	DOB      string `json:"dob,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Age      int    `json:"age,omitempty"`
}

// NewSignupRequest builds the signup body. details may be nil.
func NewSignupRequest(creds Credentials, details *ProfileDetails) SignupRequest {
	req := SignupRequest{Email: creds.Email, Password: creds.Password}
	if details != nil {
		req.Name = details.Name
		req.Phone = details.PhoneNumber
		req.Aadhar = details.AadhaarNumber
		req.DOB = details.DateOfBirth
		req.Gender = details.Gender
		req.Age = details.Age
	}
	return req
}
