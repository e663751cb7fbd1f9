/*
Package admission decides which candidate URLs may cross into the native
messaging channel.

The gate is two independent predicates composed with a logical AND: a positive
allow-list (http, https and file URLs with a non-empty remainder) and an
explicit deny-list (javascript:, data: and vbscript:). Either one alone is
enough to refuse a URL, and each can be tested in isolation.

	u, err := admission.Admit(candidate)
	if err != nil {
		reason, _ := domain.ReasonOf(err)
		log.Println("rejected:", reason)
		return
	}
	relay.Send(ctx, u)

An accepted URL is never rewritten: AcceptedURL.String returns exactly the
validated input.
*/
package admission
