package model

import (
	"fmt"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
)

// Wire names of the evaluation request.
const (
	fieldFlagKeyName = "featureFlagKeyName"
	fieldUserKeyID   = "userKeyId"
	fieldUserName    = "userName"
	fieldEmail       = "email"
	fieldCountry     = "country"
	fieldCustomProps = "userCustomizedProperties"
	fieldCustomName  = "name"
	fieldCustomValue = "value"
)

// VariationParams is the request sent to the evaluation backend: the user
// and, optionally, the single flag to evaluate. A blank flag key asks for
// every flag.
type VariationParams struct {
	featureFlagKeyName string
	user               User
}

// NewVariationParams builds a request. user is mandatory.
func NewVariationParams(featureFlagKeyName string, user *User) (VariationParams, error) {
	if user == nil {
		return VariationParams{}, ValidationError{Field: "user", Message: "user should not be nil"}
	}
	return VariationParams{featureFlagKeyName: featureFlagKeyName, user: *user}, nil
}

// FeatureFlagKeyName returns the requested flag key, or "" for all flags.
func (p VariationParams) FeatureFlagKeyName() string { return p.featureFlagKeyName }

// User returns the user the flags are evaluated for.
func (p VariationParams) User() User { return p.user }

// NeedAll reports whether the request asks for every flag.
func (p VariationParams) NeedAll() bool { return isBlank(p.featureFlagKeyName) }

// Equal reports whether both requests carry the same flag key and user.
func (p VariationParams) Equal(other VariationParams) bool {
	return p.featureFlagKeyName == other.featureFlagKeyName && p.user.Equal(other.user)
}

func (p VariationParams) String() string {
	return fmt.Sprintf("VariationParams{featureFlagKeyName=%q, user=%v, needAll=%t}",
		p.featureFlagKeyName, p.user, p.NeedAll())
}

// Jsonfy returns the wire form of the request.
func (p VariationParams) Jsonfy() (string, error) {
	return codec.Serialize(p)
}

// DecodeVariationParams decodes a request received on the wire. A request
// without userKeyId fails with a ParseError wrapping the ValidationError.
func DecodeVariationParams(text string) (VariationParams, error) {
	return codec.Deserialize[VariationParams](text)
}

// MarshalJSON writes the backend's request shape. userName, email and
// country are all gated on userName being non-blank; receivers rely on
// that, so an email without a userName is not sent.
func (p VariationParams) MarshalJSON() ([]byte, error) {
	u := p.user
	w := codec.NewObjectWriter()
	w.BeginObject()
	w.Name(fieldUserKeyID).String(u.key)
	if !isBlank(p.featureFlagKeyName) {
		w.Name(fieldFlagKeyName).String(p.featureFlagKeyName)
	}
	if !isBlank(u.userName) {
		w.Name(fieldUserName).String(u.userName)
		w.Name(fieldEmail).String(u.email)
		w.Name(fieldCountry).String(u.country)
	}
	if len(u.custom) > 0 {
		w.Name(fieldCustomProps).BeginArray()
		for _, name := range u.customNames() {
			w.BeginObject().
				Name(fieldCustomName).String(name).
				Name(fieldCustomValue).String(u.custom[name]).
				EndObject()
		}
		w.EndArray()
	}
	w.EndObject()
	return w.Bytes()
}

// UnmarshalJSON reads the backend's request shape. Fields may come in any
// order, unknown fields are skipped and null strings count as absent.
// Validation of the resulting user is left to UserBuilder.Build.
func (p *VariationParams) UnmarshalJSON(data []byte) error {
	r := codec.NewTokenReader(data)
	var flagKey string
	b := NewUserBuilder("")

	if err := r.BeginObject(); err != nil {
		return err
	}
	for r.HasNext() {
		name, err := r.NextName()
		if err != nil {
			return err
		}
		var setter func(string) *UserBuilder
		switch name {
		case fieldFlagKeyName:
			s, _, err := r.NextString()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			flagKey = s
			continue
		case fieldUserKeyID:
			setter = b.Key
		case fieldUserName:
			setter = b.UserName
		case fieldEmail:
			setter = b.Email
		case fieldCountry:
			setter = b.Country
		case fieldCustomProps:
			if err := readCustomProperties(r, b); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			continue
		default:
			if err := r.Skip(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			continue
		}
		s, ok, err := r.NextString()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			setter(s)
		}
	}
	if err := r.EndObject(); err != nil {
		return err
	}
	if err := r.Close(); err != nil {
		return err
	}

	user, err := b.Build()
	if err != nil {
		return err
	}
	*p = VariationParams{featureFlagKeyName: flagKey, user: user}
	return nil
}

// readCustomProperties reads [{"name": ..., "value": ...}, ...]. Entries
// missing a name or a value are dropped by the builder contract.
func readCustomProperties(r *codec.TokenReader, b *UserBuilder) error {
	if err := r.BeginArray(); err != nil {
		return err
	}
	for r.HasNext() {
		if err := r.BeginObject(); err != nil {
			return err
		}
		var name, value string
		var hasValue bool
		for r.HasNext() {
			field, err := r.NextName()
			if err != nil {
				return err
			}
			switch field {
			case fieldCustomName:
				if name, _, err = r.NextString(); err != nil {
					return err
				}
			case fieldCustomValue:
				if value, hasValue, err = r.NextString(); err != nil {
					return err
				}
			default:
				if err := r.Skip(); err != nil {
					return err
				}
			}
		}
		if err := r.EndObject(); err != nil {
			return err
		}
		if hasValue {
			b.Custom(name, value)
		}
	}
	return r.EndArray()
}
