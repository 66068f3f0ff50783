package mailgun

import (
	"encoding/json"
	"sort"
)

// Param is one named form field of the outgoing request.
type Param struct {
	Name  string
	Value string
}

// wireField maps one Message field to zero or more params.
type wireField struct {
	name   string
	encode func(m *Message, name string) ([]Param, error)
}

// wireFields is the Mailgun field table, in the order params are emitted.
// Attachments are not here: the encoder adds them as file parts.
var wireFields = []wireField{
	{"from", always(func(m *Message) string { return m.From.String() })},
	{"to", always(func(m *Message) string { return m.To.String() })},
	{"cc", addresses(func(m *Message) AddressList { return m.Cc })},
	{"bcc", addresses(func(m *Message) AddressList { return m.Bcc })},
	{"subject", always(func(m *Message) string { return m.Subject })},
	{"text", optional(func(m *Message) *string { return m.Text })},
	{"html", optional(func(m *Message) *string { return m.HTML })},
	{"amp-html", optional(func(m *Message) *string { return m.AMPHTML })},
	{"template", optional(func(m *Message) *string { return m.Template })},
	{"t:version", optional(func(m *Message) *string { return m.TemplateVersion })},
	{"t:text", yesIfTrue(func(m *Message) *bool { return m.TemplateText })},
	{"o:tag", optional(func(m *Message) *string { return m.Tag })},
	{"o:dkim", optional(func(m *Message) *string { return m.DKIM })},
	{"o:deliverytime", optional(func(m *Message) *string { return m.DeliveryTime })},
	{"o:testmode", optional(func(m *Message) *string { return m.TestMode })},
	{"o:tracking", optional(func(m *Message) *string { return m.Tracking })},
	{"o:tracking-clicks", optional(func(m *Message) *string { return m.TrackingClicks })},
	{"o:tracking-opens", yesNo(func(m *Message) *bool { return m.TrackingOpens })},
	{"o:require-tls", yesNo(func(m *Message) *bool { return m.RequireTLS })},
	{"o:skip-verification", yesNo(func(m *Message) *bool { return m.SkipVerification })},
	{"h:", prefixed(func(m *Message) map[string]string { return m.CustomHeaders })},
	{"v:", prefixed(func(m *Message) map[string]string { return m.CustomData })},
	{"recipient-variables", jsonDocument(func(m *Message) map[string]any { return m.RecipientVariables })},
}

// WireParams returns the message as Mailgun form fields, in table order.
// Map-backed fields are emitted with their keys sorted.
func (m *Message) WireParams() ([]Param, error) {
	params := make([]Param, 0, len(wireFields))
	for _, f := range wireFields {
		ps, err := f.encode(m, f.name)
		if err != nil {
			return nil, err
		}
		params = append(params, ps...)
	}
	return params, nil
}

func always(get func(*Message) string) func(*Message, string) ([]Param, error) {
	return func(m *Message, name string) ([]Param, error) {
		return []Param{{name, get(m)}}, nil
	}
}

func addresses(get func(*Message) AddressList) func(*Message, string) ([]Param, error) {
	return func(m *Message, name string) ([]Param, error) {
		l := get(m)
		if len(l) == 0 {
			return nil, nil
		}
		return []Param{{name, l.String()}}, nil
	}
}

func optional(get func(*Message) *string) func(*Message, string) ([]Param, error) {
	return func(m *Message, name string) ([]Param, error) {
		v := get(m)
		if v == nil {
			return nil, nil
		}
		return []Param{{name, *v}}, nil
	}
}

// yesIfTrue emits "yes" for true and nothing otherwise.
func yesIfTrue(get func(*Message) *bool) func(*Message, string) ([]Param, error) {
	return func(m *Message, name string) ([]Param, error) {
		v := get(m)
		if v == nil || !*v {
			return nil, nil
		}
		return []Param{{name, "yes"}}, nil
	}
}

func yesNo(get func(*Message) *bool) func(*Message, string) ([]Param, error) {
	return func(m *Message, name string) ([]Param, error) {
		v := get(m)
		if v == nil {
			return nil, nil
		}
		if *v {
			return []Param{{name, "yes"}}, nil
		}
		return []Param{{name, "no"}}, nil
	}
}

func prefixed(get func(*Message) map[string]string) func(*Message, string) ([]Param, error) {
	return func(m *Message, prefix string) ([]Param, error) {
		values := get(m)
		if len(values) == 0 {
			return nil, nil
		}
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		params := make([]Param, len(keys))
		for i, k := range keys {
			params[i] = Param{prefix + k, values[k]}
		}
		return params, nil
	}
}

func jsonDocument(get func(*Message) map[string]any) func(*Message, string) ([]Param, error) {
	return func(m *Message, name string) ([]Param, error) {
		v := get(m)
		if v == nil {
			return nil, nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, mailgunErrors.NewWithCause(ErrFieldSerialization, err).WithDetail("field", name)
		}
		return []Param{{name, string(data)}}, nil
	}
}
