package notifx

import "time"

// SendOptions holds optional configuration for a send operation.
type SendOptions struct {
	Tag          string
	TestMode     bool
	Tracking     *bool
	Variables    map[string]string
	Template     string
	DeliveryTime time.Time
}

// Option is a functional option for send operations.
type Option func(*SendOptions)

// WithTag labels the message for provider-side analytics.
func WithTag(tag string) Option {
	return func(o *SendOptions) {
		o.Tag = tag
	}
}

// WithTestMode asks the provider to accept the message without delivering it.
func WithTestMode() Option {
	return func(o *SendOptions) {
		o.TestMode = true
	}
}

// WithTracking turns open and click tracking on or off.
func WithTracking(enabled bool) Option {
	return func(o *SendOptions) {
		o.Tracking = &enabled
	}
}

// WithVariables attaches custom data that comes back on delivery webhooks.
func WithVariables(vars map[string]string) Option {
	return func(o *SendOptions) {
		if o.Variables == nil {
			o.Variables = make(map[string]string, len(vars))
		}
		for k, v := range vars {
			o.Variables[k] = v
		}
	}
}

// WithTemplate renders a provider-stored template instead of the message body.
func WithTemplate(name string) Option {
	return func(o *SendOptions) {
		o.Template = name
	}
}

// WithDeliveryTime schedules the send.
func WithDeliveryTime(t time.Time) Option {
	return func(o *SendOptions) {
		o.DeliveryTime = t
	}
}

// ApplyOptions folds opts into a SendOptions value.
func ApplyOptions(opts []Option) SendOptions {
	var so SendOptions
	for _, o := range opts {
		o(&so)
	}
	return so
}
