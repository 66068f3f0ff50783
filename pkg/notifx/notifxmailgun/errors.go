package notifxmailgun

import "github.com/Abraxas-365/mailgun/pkg/errx"

var mailgunProviderErrors = errx.NewRegistry("NOTIFX_MAILGUN")

var (
	ErrSendFailed   = mailgunProviderErrors.Register("SEND_FAILED", errx.TypeExternal, 502, "Mailgun send email failed")
	ErrBuildMessage = mailgunProviderErrors.Register("BUILD_MESSAGE", errx.TypeValidation, 400, "Failed to build Mailgun message")
	ErrStaging      = mailgunProviderErrors.Register("STAGING", errx.TypeInternal, 500, "Failed to stage attachment")
)
