package model

import "strings"

// Field names one content attribute of a contact record.
type Field string

const (
	FieldWebsite   Field = "website"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldFacebook  Field = "facebook"
	FieldInstagram Field = "instagram"
	FieldLinkedIn  Field = "linkedin"
	FieldOwner     Field = "owner"
	FieldAddress   Field = "address"
)

// ContentFields lists every content field in output order.
var ContentFields = []Field{
	FieldWebsite,
	FieldEmail,
	FieldPhone,
	FieldFacebook,
	FieldInstagram,
	FieldLinkedIn,
	FieldOwner,
	FieldAddress,
}

// SocialFields lists the fields holding social profile URLs.
var SocialFields = []Field{FieldFacebook, FieldInstagram, FieldLinkedIn}

// IsSocial reports whether f holds a social profile URL.
func (f Field) IsSocial() bool {
	switch f {
	case FieldFacebook, FieldInstagram, FieldLinkedIn:
		return true
	}
	return false
}

// Label is the capitalized key used in provider text blocks.
func (f Field) Label() string {
	switch f {
	case FieldLinkedIn:
		return "LinkedIn"
	case FieldOwner:
		return "Owner(s)"
	}
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Value is an optional string. The zero value is absent.
type Value struct {
	v  string
	ok bool
}

// Some returns a present value.
func Some(v string) Value { return Value{v: v, ok: true} }

// None returns an absent value.
func None() Value { return Value{} }

// Get returns the value and whether it is present.
func (v Value) Get() (string, bool) { return v.v, v.ok }

// Present reports whether the value is set.
func (v Value) Present() bool { return v.ok }

// Or returns the value, or def when absent.
func (v Value) Or(def string) string {
	if v.ok {
		return v.v
	}
	return def
}
