// Package mailgun composes transactional messages and sends them through the
// Mailgun "send message" API.
//
// A Message is built with a MessageBuilder, encoded either as an URL-encoded form
// or, when it carries attachments, as a multipart form, and posted by a Client:
//
//	from := mailgun.NewAddress("Sender", "sender@example.com")
//	to := []mailgun.Address{mailgun.NewAddress("", "someone@example.com")}
//
//	b := mailgun.NewMessageBuilder("Subject Line", from, to).
//		HTML(ptrx.String("<h1>Hello</h1>")).
//		Attachment(mailgun.NewAttachment("attachment", "./invoice.pdf"))
//
//	client := mailgun.NewClient("API_KEY", "mg.example.com")
//	resp, err := client.SendMessage(ctx, b.Message())
//
// Every failure is an *errx.Error from this package's registry; use errx.IsCode
// with ErrForbidden, ErrSendRejected and friends to tell them apart.
package mailgun
